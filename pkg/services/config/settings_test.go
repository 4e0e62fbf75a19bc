package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	// Given no settings file

	// When
	s, err := LoadSettings("")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/report", s.Backend.ReportURL)
	assert.Equal(t, 5*time.Second, s.Poll.ReportInterval)
	assert.Equal(t, 2*time.Second, s.Poll.LogInterval)
	assert.Equal(t, 10*time.Second, s.HTTP.Timeout)
	assert.Equal(t, uint(2), s.HTTP.RetryAttempts)
	assert.Equal(t, 200*time.Millisecond, s.HTTP.RetryDelay)
	assert.Equal(t, uint32(5), s.HTTP.BreakerFailures)
	assert.Equal(t, ":8090", s.Server.Addr)
	assert.Equal(t, "info", s.Logger.Level)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "cloudcull.yaml")
	content := `
backend:
  report_url: s3://audit-bucket/report.json
  log_url: cloudwatch:///aws/ecs/cloudcull
  region: eu-west-1
poll:
  report_interval: 30s
brand:
  base_path: ./public
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CLOUDCULL_POLL_LOG_INTERVAL", "500ms")

	// When
	s, err := LoadSettings(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "s3://audit-bucket/report.json", s.Backend.ReportURL)
	assert.Equal(t, "cloudwatch:///aws/ecs/cloudcull", s.Backend.LogURL)
	assert.Equal(t, "eu-west-1", s.Backend.Region)
	assert.Equal(t, 30*time.Second, s.Poll.ReportInterval)
	assert.Equal(t, 500*time.Millisecond, s.Poll.LogInterval)
	assert.Equal(t, "./public", s.Brand.BasePath)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadSettings_InvalidInterval(t *testing.T) {
	t.Setenv("CLOUDCULL_POLL_REPORT_INTERVAL", "0s")

	_, err := LoadSettings("")
	assert.ErrorContains(t, err, "poll intervals")
}

func TestSettings_ApplyProfile(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	s.ApplyProfile(domain.ConfigProfile{Name: "staging", ReportURL: "https://staging/api/report"})

	assert.Equal(t, "https://staging/api/report", s.Backend.ReportURL)
	assert.Equal(t, "http://localhost:8080/api/logs", s.Backend.LogURL, "empty profile values keep the current setting")
}

func TestSettings_ValidateAfterOverride(t *testing.T) {
	// Given valid defaults
	s, err := LoadSettings("")
	require.NoError(t, err)

	// When the listen address is cleared after loading
	s.Server.Addr = ""

	// Then validation catches it
	assert.ErrorContains(t, s.Validate(), "server.addr is required")
}
