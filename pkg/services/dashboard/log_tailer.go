package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const DefaultLogInterval = 2 * time.Second

// LogTailer fetches the backend log on a fixed interval and parses it into
// entries. Failures are only logged, logs are best-effort telemetry.
type LogTailer struct {
	source   LogSource
	interval time.Duration

	seq      atomic.Uint64
	inflight sync.WaitGroup
}

func NewLogTailer(source LogSource, interval time.Duration) *LogTailer {
	if interval <= 0 {
		interval = DefaultLogInterval
	}
	return &LogTailer{
		source:   source,
		interval: interval,
	}
}

func (t *LogTailer) Run(ctx context.Context, out chan<- Event) error {
	defer t.inflight.Wait()
	runEvery(ctx, t.interval, func() { t.issue(ctx, out) })
	return nil
}

func (t *LogTailer) issue(ctx context.Context, out chan<- Event) uint64 {
	seq := t.seq.Add(1)
	t.inflight.Add(1)

	go func() {
		defer t.inflight.Done()

		body, err := t.source.FetchLogs(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Uint64("seq", seq).Msg("log fetch failed")
			deliver(ctx, out, LogsFetched{Seq: seq, Err: err})
			return
		}
		deliver(ctx, out, LogsFetched{Seq: seq, Entries: ParseLogBody(body)})
	}()

	return seq
}
