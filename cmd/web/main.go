package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/de-tools/cloudcull-console/pkg/runtime/terminal/commands"
	"github.com/de-tools/cloudcull-console/pkg/server"
	"github.com/de-tools/cloudcull-console/pkg/services/config"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/services/sources"
	"github.com/de-tools/cloudcull-console/pkg/services/telemetry"
	"github.com/de-tools/cloudcull-console/pkg/view"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	globals commands.Globals
	addr    string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Serve the CloudCull console over HTTP",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&globals.ConfigPath, "config", "c", "", "Path to a settings file")
	rootCmd.Flags().StringVar(&globals.ProfilesPath, "profiles", config.DefaultProfilesPath(), "Path to the profiles file")
	rootCmd.Flags().StringVarP(&globals.Profile, "profile", "p", "", "Named backend from the profiles file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from settings)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveSettings loads settings and the profile overlay the same way the
// CLI does, then applies the listen address override and validates again.
func resolveSettings(ctx context.Context, globals *commands.Globals, addr string) (*config.Settings, error) {
	settings, err := globals.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if addr != "" {
		settings.Server.Addr = addr
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := resolveSettings(cmd.Context(), &globals, addr)
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(settings.Logger.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())
	if globals.Profile != "" {
		logger.Info().Msgf("Using profile `%s`.", globals.Profile)
	}

	registry := sources.NewDefaultRegistry()
	reports, err := registry.Report(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create report source: %w", err)
	}
	logs, err := registry.Logs(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create log source: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	coord := dashboard.NewCoordinator(reports, logs, dashboard.Options{
		ReportInterval: settings.Poll.ReportInterval,
		LogInterval:    settings.Poll.LogInterval,
		Metrics:        telemetry.NewMetrics(promRegistry),
	})

	brand := view.ProbeBrand(ctx, &http.Client{Timeout: settings.HTTP.Timeout}, settings.Brand.BasePath)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            settings.Server.Addr,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Snapshots: coord,
			Renderer:  view.Renderer{Brand: brand},
			Gatherer:  promRegistry,
		},
	})

	logger.Info().
		Str("report_url", settings.Backend.ReportURL).
		Str("log_url", settings.Backend.LogURL).
		Msg("backend sources configured")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return coord.Run(ctx) })
	g.Go(func() error { return webAPI.Start(ctx) })
	return g.Wait()
}
