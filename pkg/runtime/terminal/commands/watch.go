package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/de-tools/cloudcull-console/pkg/runtime/terminal/tui"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/services/sources"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type WatchCmd struct {
	globals  *Globals
	registry sources.Registry
	logFile  string
}

func NewWatchCmd(globals *Globals, registry sources.Registry) *cobra.Command {
	wc := &WatchCmd{globals: globals, registry: registry}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the live console",
		RunE:  wc.run,
	}

	cmd.Flags().StringVar(&wc.logFile, "log-file", "", "File receiving console logs (default from settings)")

	return cmd
}

func (wc *WatchCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings, err := wc.globals.Settings(ctx)
	if err != nil {
		return err
	}

	// the terminal belongs to the UI, logs go to a file
	path := settings.Logger.File
	if wc.logFile != "" {
		path = wc.logFile
	}
	f, err := openLogFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	logger, err := NewLogger(f, settings.Logger.Level)
	if err != nil {
		return err
	}
	ctx = logger.WithContext(ctx)

	reports, err := wc.registry.Report(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create report source: %w", err)
	}
	logs, err := wc.registry.Logs(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to create log source: %w", err)
	}

	coord := dashboard.NewCoordinator(reports, logs, dashboard.Options{
		ReportInterval: settings.Poll.ReportInterval,
		LogInterval:    settings.Poll.LogInterval,
	})
	model := tui.New(coord.Subscribe(), tui.Config{
		Renderer: probeBrand(ctx, settings),
		Logger:   &logger,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return coord.Run(ctx) })
	g.Go(func() error {
		defer cancel()
		_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	return g.Wait()
}
