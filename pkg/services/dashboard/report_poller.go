package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const DefaultReportInterval = 5 * time.Second

// ReportPoller fetches the audit report on a fixed interval. Every request
// gets a sequence number when issued; requests are never serialized against
// each other, the coordinator discards superseded results.
type ReportPoller struct {
	source   ReportSource
	interval time.Duration

	seq      atomic.Uint64
	inflight sync.WaitGroup
}

func NewReportPoller(source ReportSource, interval time.Duration) *ReportPoller {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	return &ReportPoller{
		source:   source,
		interval: interval,
	}
}

// Run blocks until ctx is done and every in-flight request has returned.
func (p *ReportPoller) Run(ctx context.Context, out chan<- Event) error {
	defer p.inflight.Wait()
	runEvery(ctx, p.interval, func() { p.issue(ctx, out) })
	return nil
}

func (p *ReportPoller) issue(ctx context.Context, out chan<- Event) uint64 {
	seq := p.seq.Add(1)
	p.inflight.Add(1)

	go func() {
		defer p.inflight.Done()

		report, err := p.source.FetchReport(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Uint64("seq", seq).Msg("report fetch failed")
		}
		deliver(ctx, out, ReportFetched{Seq: seq, Report: report, Err: err})
	}()

	return seq
}
