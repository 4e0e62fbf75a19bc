package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/spf13/viper"
)

const EnvPrefix = "CLOUDCULL"

type Settings struct {
	Backend BackendSettings `mapstructure:"backend"`
	Brand   BrandSettings   `mapstructure:"brand"`
	Poll    PollSettings    `mapstructure:"poll"`
	HTTP    HTTPSettings    `mapstructure:"http"`
	Server  ServerSettings  `mapstructure:"server"`
	Logger  LoggerSettings  `mapstructure:"logger"`
}

// BackendSettings locate the report and the log. Either URL may be http(s),
// the report may also be s3://bucket/key and the log cloudwatch://group.
type BackendSettings struct {
	ReportURL   string        `mapstructure:"report_url"`
	LogURL      string        `mapstructure:"log_url"`
	Region      string        `mapstructure:"region"`
	LogWindow   time.Duration `mapstructure:"log_window"`
	LogMaxLines int           `mapstructure:"log_max_lines"`
}

type BrandSettings struct {
	BasePath string `mapstructure:"base_path"`
}

type PollSettings struct {
	ReportInterval time.Duration `mapstructure:"report_interval"`
	LogInterval    time.Duration `mapstructure:"log_interval"`
}

type HTTPSettings struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	RetryAttempts   uint          `mapstructure:"retry_attempts"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggerSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.report_url", "http://localhost:8080/api/report")
	v.SetDefault("backend.log_url", "http://localhost:8080/api/logs")
	v.SetDefault("backend.region", "")
	v.SetDefault("backend.log_window", 15*time.Minute)
	v.SetDefault("backend.log_max_lines", 500)

	v.SetDefault("brand.base_path", "")

	v.SetDefault("poll.report_interval", 5*time.Second)
	v.SetDefault("poll.log_interval", 2*time.Second)

	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("http.retry_attempts", 2)
	v.SetDefault("http.retry_delay", 200*time.Millisecond)
	v.SetDefault("http.breaker_failures", 5)
	v.SetDefault("http.breaker_timeout", 30*time.Second)

	v.SetDefault("server.addr", ":8090")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "cloudcull-console.log")
}

// LoadSettings reads the settings file at path (optional, may be empty),
// then applies CLOUDCULL_* environment overrides such as
// CLOUDCULL_BACKEND_REPORT_URL.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.Backend.ReportURL == "" {
		return fmt.Errorf("backend.report_url is required")
	}
	if s.Poll.ReportInterval <= 0 || s.Poll.LogInterval <= 0 {
		return fmt.Errorf("poll intervals must be positive")
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// ApplyProfile overlays a named backend from the profiles file.
func (s *Settings) ApplyProfile(p domain.ConfigProfile) {
	s.Backend.ReportURL = p.ReportURL
	if p.LogURL != "" {
		s.Backend.LogURL = p.LogURL
	}
	if p.BasePath != "" {
		s.Brand.BasePath = p.BasePath
	}
}
