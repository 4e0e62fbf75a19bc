package dashboard

import (
	"context"
	"time"
)

// runEvery calls fn immediately and then on every tick until ctx is done.
// Ticks are wall-clock driven: a slow fn never delays the next tick.
func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	fn()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

func deliver(ctx context.Context, out chan<- Event, ev Event) {
	select {
	case out <- ev:
	case <-ctx.Done():
	}
}
