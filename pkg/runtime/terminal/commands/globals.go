package commands

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/de-tools/cloudcull-console/pkg/services/config"
	"github.com/de-tools/cloudcull-console/pkg/view"
	"github.com/rs/zerolog"
)

// Globals holds the persistent flags shared by every command.
type Globals struct {
	ConfigPath   string
	ProfilesPath string
	Profile      string
	LogLevel     string
}

// Settings loads the settings file and overlays the selected profile.
func (g *Globals) Settings(ctx context.Context) (*config.Settings, error) {
	settings, err := config.LoadSettings(g.ConfigPath)
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		settings.Logger.Level = g.LogLevel
	}

	if g.Profile != "" {
		registry, err := config.NewRegistry(g.ProfilesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create profile registry: %w", err)
		}
		profile, err := registry.GetProfile(ctx, g.Profile)
		if err != nil {
			return nil, err
		}
		settings.ApplyProfile(profile)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// NewLogger builds a leveled logger writing to w.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

func probeBrand(ctx context.Context, settings *config.Settings) view.Renderer {
	client := &http.Client{Timeout: settings.HTTP.Timeout}
	return view.Renderer{Brand: view.ProbeBrand(ctx, client, settings.Brand.BasePath)}
}
