package sources

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/cloudcull-console/pkg/services/config"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
)

// ReportFactory creates a report source for a location whose scheme it was
// registered under.
type ReportFactory func(ctx context.Context, location string, settings *config.Settings) (dashboard.ReportSource, error)

// LogFactory creates a log source for a location whose scheme it was
// registered under.
type LogFactory func(ctx context.Context, location string, settings *config.Settings) (dashboard.LogSource, error)

// Registry picks the source implementation from the scheme of the
// configured location.
type Registry interface {
	RegisterReport(scheme string, factory ReportFactory) error
	RegisterLog(scheme string, factory LogFactory) error
	// Report creates the source for settings.Backend.ReportURL.
	Report(ctx context.Context, settings *config.Settings) (dashboard.ReportSource, error)
	// Logs creates the source for settings.Backend.LogURL.
	Logs(ctx context.Context, settings *config.Settings) (dashboard.LogSource, error)
	// Schemes lists every registered scheme, sorted.
	Schemes() []string
}

type registry struct {
	mu      sync.RWMutex
	reports map[string]ReportFactory
	logs    map[string]LogFactory
}

func NewRegistry() Registry {
	return &registry{
		reports: make(map[string]ReportFactory),
		logs:    make(map[string]LogFactory),
	}
}

func (r *registry) RegisterReport(scheme string, factory ReportFactory) error {
	if scheme == "" {
		return fmt.Errorf("scheme cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[scheme]; exists {
		return fmt.Errorf("report scheme %q is already registered", scheme)
	}
	r.reports[scheme] = factory
	return nil
}

func (r *registry) RegisterLog(scheme string, factory LogFactory) error {
	if scheme == "" {
		return fmt.Errorf("scheme cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.logs[scheme]; exists {
		return fmt.Errorf("log scheme %q is already registered", scheme)
	}
	r.logs[scheme] = factory
	return nil
}

func (r *registry) Report(ctx context.Context, settings *config.Settings) (dashboard.ReportSource, error) {
	location := settings.Backend.ReportURL
	scheme, err := schemeOf(location)
	if err != nil {
		return nil, fmt.Errorf("report source: %w", err)
	}

	r.mu.RLock()
	factory, exists := r.reports[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("report source: scheme %q is not registered (known: %s)", scheme, strings.Join(r.Schemes(), ", "))
	}
	return factory(ctx, location, settings)
}

func (r *registry) Logs(ctx context.Context, settings *config.Settings) (dashboard.LogSource, error) {
	location := settings.Backend.LogURL
	if location == "" {
		return noLogs{}, nil
	}
	scheme, err := schemeOf(location)
	if err != nil {
		return nil, fmt.Errorf("log source: %w", err)
	}

	r.mu.RLock()
	factory, exists := r.logs[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("log source: scheme %q is not registered (known: %s)", scheme, strings.Join(r.Schemes(), ", "))
	}
	return factory(ctx, location, settings)
}

func (r *registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for scheme := range r.reports {
		seen[scheme] = struct{}{}
	}
	for scheme := range r.logs {
		seen[scheme] = struct{}{}
	}
	schemes := make([]string, 0, len(seen))
	for scheme := range seen {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

func schemeOf(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("location %q has no scheme", location)
	}
	return u.Scheme, nil
}

// noLogs is used when no log location is configured; the console then
// shows the synthesized log.
type noLogs struct{}

func (noLogs) FetchLogs(context.Context) (string, error) {
	return "", nil
}
