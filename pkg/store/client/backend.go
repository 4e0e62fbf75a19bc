package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v5"
	"github.com/de-tools/cloudcull-console/pkg/adapters"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const (
	DefaultTimeout         = 10 * time.Second
	DefaultRetryAttempts   = 2
	DefaultRetryDelay      = 200 * time.Millisecond
	DefaultBreakerFailures = 5
	DefaultBreakerTimeout  = 30 * time.Second

	maxBodySize = 8 << 20

	noLogsBody      = "No logs available."
	logErrorPrefix  = "Error reading logs:"
	reportSourceTag = "report"
)

var (
	errNoReportURL = errors.New("client has no report url")
	errNoLogURL    = errors.New("client has no log url")
)

type Options struct {
	ReportURL string
	LogURL    string

	Timeout         time.Duration
	RetryAttempts   uint
	RetryDelay      time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
	// PollInterval caps the open period of the breaker at half an interval,
	// so every poll after a trip still reaches the backend.
	PollInterval time.Duration

	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// BackendClient reads the audit report and the engine log from the
// dashboard backend over HTTP. It implements both dashboard.ReportSource and
// dashboard.LogSource.
type BackendClient struct {
	reportURL string
	logURL    string

	http       *http.Client
	attempts   uint
	retryDelay time.Duration
	breaker    *gobreaker.CircuitBreaker

	mu      sync.Mutex
	lastErr error // last transport failure on the report path
}

func NewBackendClient(opts Options) (*BackendClient, error) {
	if opts.ReportURL == "" && opts.LogURL == "" {
		return nil, errors.New("no report or log url")
	}
	if err := validateURL(opts.ReportURL); err != nil {
		return nil, fmt.Errorf("report url: %w", err)
	}
	if err := validateURL(opts.LogURL); err != nil {
		return nil, fmt.Errorf("log url: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 1
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = DefaultBreakerFailures
	}
	if opts.BreakerTimeout <= 0 {
		opts.BreakerTimeout = DefaultBreakerTimeout
	}
	if half := opts.PollInterval / 2; half > 0 && opts.BreakerTimeout > half {
		opts.BreakerTimeout = half
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	failures := opts.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cloudcull-report",
		MaxRequests: 1,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})

	return &BackendClient{
		reportURL:  opts.ReportURL,
		logURL:     opts.LogURL,
		http:       httpClient,
		attempts:   opts.RetryAttempts,
		retryDelay: opts.RetryDelay,
		breaker:    breaker,
	}, nil
}

// FetchReport returns the current audit report. Transport failures are
// *domain.TransportError, malformed documents *domain.ParseError.
func (c *BackendClient) FetchReport(ctx context.Context) (*domain.AuditReport, error) {
	if c.reportURL == "" {
		return nil, errNoReportURL
	}
	res, err := c.breaker.Execute(func() (interface{}, error) {
		data, err := c.getWithRetry(ctx, c.reportURL)
		c.setLastErr(err)
		return data, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			zerolog.Ctx(ctx).Debug().Str("url", c.reportURL).Msg("report breaker open, request skipped")
			if last := c.getLastErr(); last != nil {
				return nil, last
			}
			return nil, &domain.TransportError{Op: http.MethodGet, URL: c.reportURL, Err: err}
		}
		return nil, err
	}

	return adapters.DecodeAuditReport(reportSourceTag, res.([]byte))
}

func (c *BackendClient) setLastErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

func (c *BackendClient) getLastErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// FetchLogs returns the raw log body. The backend's "no logs" placeholder is
// returned as an empty body.
func (c *BackendClient) FetchLogs(ctx context.Context) (string, error) {
	if c.logURL == "" {
		return "", errNoLogURL
	}
	data, err := c.getWithRetry(ctx, c.logURL)
	if err != nil {
		return "", err
	}

	body := strings.TrimSpace(string(data))
	switch {
	case body == noLogsBody:
		return "", nil
	case strings.HasPrefix(body, logErrorPrefix):
		return "", &domain.TransportError{Op: http.MethodGet, URL: c.logURL, Err: errors.New(body)}
	}
	return body, nil
}

func (c *BackendClient) getWithRetry(ctx context.Context, target string) ([]byte, error) {
	var (
		data    []byte
		lastErr error
	)

	r := retry.New(
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.DelayType(func(n uint, err error, config retry.DelayContext) time.Duration {
			return c.retryDelay
		}),
	)
	err := r.Do(func() error {
		data, lastErr = c.get(ctx, target)
		return lastErr
	})
	if err != nil {
		// report the transport failure itself, not the retry summary
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, &domain.TransportError{Op: http.MethodGet, URL: target, Err: err}
	}
	return data, nil
}

func (c *BackendClient) get(ctx context.Context, target string) ([]byte, error) {
	logger := zerolog.Ctx(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: http.MethodGet, URL: target, Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: http.MethodGet, URL: target, Err: unwrapURLError(err)}
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransportError{Op: http.MethodGet, URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{Op: http.MethodGet, URL: target, Err: err}
	}
	return data, nil
}

// unwrapURLError drops the *url.Error wrapper, TransportError already names
// the method and URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// validateURL accepts an empty url, the client then only serves the other
// endpoint.
func validateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
