package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/de-tools/cloudcull-console/pkg/services/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	ReportInterval time.Duration
	LogInterval    time.Duration
	Metrics        *telemetry.Metrics
	Now            func() time.Time
}

// Coordinator owns the session State. Pollers send their results to it over
// a channel; it is the only goroutine that applies transitions, and it
// publishes a Snapshot after every applied change.
type Coordinator struct {
	reports *ReportPoller
	logs    *LogTailer
	metrics *telemetry.Metrics
	now     func() time.Time
	session string

	events chan Event
	state  *State

	mu       sync.RWMutex
	snapshot Snapshot
	subs     []chan Snapshot
	closed   bool
}

func NewCoordinator(reports ReportSource, logs LogSource, opts Options) *Coordinator {
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewMetrics(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	state := NewState()
	return &Coordinator{
		reports:  NewReportPoller(reports, opts.ReportInterval),
		logs:     NewLogTailer(logs, opts.LogInterval),
		metrics:  opts.Metrics,
		now:      opts.Now,
		session:  uuid.New().String(),
		events:   make(chan Event),
		state:    state,
		snapshot: state.Snapshot(opts.Now()),
	}
}

// Run starts both pollers and applies their results until ctx is done.
// It returns once every poller goroutine has exited; subscriber channels
// are closed on return.
func (c *Coordinator) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx).With().Str("session", c.session).Logger()
	ctx = logger.WithContext(ctx)
	defer c.closeSubscribers()

	logger.Info().Msg("console session started")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.reports.Run(ctx, c.events) })
	g.Go(func() error { return c.logs.Run(ctx, c.events) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-c.events:
				c.apply(ctx, ev)
			}
		}
	})

	err := g.Wait()
	logger.Info().Msg("console session stopped")
	return err
}

func (c *Coordinator) apply(ctx context.Context, ev Event) {
	// late arrivals after teardown are dropped
	if ctx.Err() != nil {
		return
	}
	logger := zerolog.Ctx(ctx)

	switch ev := ev.(type) {
	case ReportFetched:
		prev := c.state.Connectivity()
		if !c.state.ApplyReport(ev) {
			c.metrics.ObserveFetch(telemetry.SourceReport, telemetry.OutcomeSuperseded)
			logger.Debug().Uint64("seq", ev.Seq).Msg("discarding superseded report result")
			return
		}
		c.observeReport(ev)
		next := c.state.Connectivity()
		switch {
		case ev.Err != nil && next == domain.StateDegraded:
			logger.Warn().Err(ev.Err).Str("from", prev.String()).Msg("report fetch failed, keeping last report")
		case ev.Err != nil:
			logger.Error().Err(ev.Err).Str("from", prev.String()).Msg("report fetch failed, no report to show")
		case next != prev:
			logger.Info().Str("from", prev.String()).Str("to", next.String()).Msg("connectivity changed")
		}
	case LogsFetched:
		if !c.state.ApplyLogs(ev) {
			c.metrics.ObserveFetch(telemetry.SourceLogs, telemetry.OutcomeSuperseded)
			return
		}
		if ev.Err != nil {
			c.metrics.ObserveFetch(telemetry.SourceLogs, telemetry.OutcomeFailure)
		} else {
			c.metrics.ObserveFetch(telemetry.SourceLogs, telemetry.OutcomeSuccess)
		}
	default:
		return
	}

	c.publish(c.state.Snapshot(c.now()))
}

func (c *Coordinator) observeReport(ev ReportFetched) {
	c.metrics.ConnectivityState.Set(float64(c.state.Connectivity()))
	if ev.Err != nil || ev.Report == nil {
		c.metrics.ObserveFetch(telemetry.SourceReport, telemetry.OutcomeFailure)
		return
	}
	c.metrics.ObserveFetch(telemetry.SourceReport, telemetry.OutcomeSuccess)
	c.metrics.ZombiesFound.Set(float64(ev.Report.Summary.ZombieCount))
	c.metrics.PotentialSavings.Set(ev.Report.Summary.TotalMonthlySavings)
}

// Snapshot returns the latest published snapshot.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Subscribe returns a channel that receives the current snapshot and every
// later one. Slow readers only ever see the newest snapshot. The channel is
// closed when Run returns.
func (c *Coordinator) Subscribe() <-chan Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if c.closed {
		close(ch)
		return ch
	}
	ch <- c.snapshot
	c.subs = append(c.subs, ch)
	return ch
}

func (c *Coordinator) publish(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = snap
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (c *Coordinator) closeSubscribers() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
}
