package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/cloudcull-console/pkg/runtime/terminal/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloudcullcfg")
	content := "[staging]\nreport_url = https://staging.example.com/api/report\nbase_path = https://staging.example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveSettings_ProfileAndAddr(t *testing.T) {
	g := &commands.Globals{ProfilesPath: writeProfiles(t), Profile: "staging"}

	settings, err := resolveSettings(context.Background(), g, "127.0.0.1:9100")

	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/api/report", settings.Backend.ReportURL)
	assert.Equal(t, "https://staging.example.com", settings.Brand.BasePath)
	assert.Equal(t, "127.0.0.1:9100", settings.Server.Addr)
}

func TestResolveSettings_UnknownProfile(t *testing.T) {
	g := &commands.Globals{ProfilesPath: writeProfiles(t), Profile: "prod"}

	_, err := resolveSettings(context.Background(), g, "")

	assert.ErrorContains(t, err, "profile prod not found")
}

func TestResolveSettings_InvalidAfterEnv(t *testing.T) {
	t.Setenv("CLOUDCULL_POLL_REPORT_INTERVAL", "0s")

	_, err := resolveSettings(context.Background(), &commands.Globals{}, "")

	assert.ErrorContains(t, err, "poll intervals must be positive")
}
