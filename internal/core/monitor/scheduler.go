package monitor

import (
	"context"
	"time"
)

// runLoop fires tick once immediately, then once per interval, until the
// context is cancelled or tick returns an error. Ticks are serialized by
// construction: the next one cannot start before the previous returns, so
// a session never sees overlapping polls.
func runLoop(ctx context.Context, interval time.Duration, tick func(ctx context.Context) error) {
	if err := tick(ctx); err != nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tick(ctx); err != nil {
				return
			}
		}
	}
}
