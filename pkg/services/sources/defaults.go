package sources

import (
	"context"

	"github.com/de-tools/cloudcull-console/pkg/services/config"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/store/client"
	"github.com/de-tools/cloudcull-console/pkg/store/cwlogs"
	"github.com/de-tools/cloudcull-console/pkg/store/s3report"
)

// NewDefaultRegistry knows the backend HTTP API, S3 report objects and
// CloudWatch log groups.
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	for _, scheme := range []string{"http", "https"} {
		_ = r.RegisterReport(scheme, httpReport)
		_ = r.RegisterLog(scheme, httpLogs)
	}
	_ = r.RegisterReport(s3report.Scheme, s3Report)
	_ = r.RegisterLog(cwlogs.Scheme, cloudWatchLogs)
	return r
}

func backendOptions(settings *config.Settings) client.Options {
	return client.Options{
		Timeout:         settings.HTTP.Timeout,
		RetryAttempts:   settings.HTTP.RetryAttempts,
		RetryDelay:      settings.HTTP.RetryDelay,
		BreakerFailures: settings.HTTP.BreakerFailures,
		BreakerTimeout:  settings.HTTP.BreakerTimeout,
		PollInterval:    settings.Poll.ReportInterval,
	}
}

func httpReport(_ context.Context, location string, settings *config.Settings) (dashboard.ReportSource, error) {
	opts := backendOptions(settings)
	opts.ReportURL = location
	return client.NewBackendClient(opts)
}

func httpLogs(_ context.Context, location string, settings *config.Settings) (dashboard.LogSource, error) {
	opts := backendOptions(settings)
	opts.LogURL = location
	return client.NewBackendClient(opts)
}

func s3Report(ctx context.Context, location string, settings *config.Settings) (dashboard.ReportSource, error) {
	return s3report.New(ctx, location, settings.Backend.Region)
}

func cloudWatchLogs(ctx context.Context, location string, settings *config.Settings) (dashboard.LogSource, error) {
	return cwlogs.New(ctx, location, settings.Backend.Region,
		cwlogs.WithWindow(settings.Backend.LogWindow),
		cwlogs.WithMaxLines(settings.Backend.LogMaxLines),
	)
}
