package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// retryDelay is used when the next boundary is not in the future, which
// happens after the clock moves.
const retryDelay = time.Second

// Ticker calls a function at every wall-clock multiple of its interval,
// counted from local midnight.
type Ticker struct {
	interval time.Duration
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
	logger   *slog.Logger
}

// New creates a Ticker. A nil logger uses slog.Default().
func New(interval time.Duration, logger *slog.Logger) *Ticker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ticker{
		interval: interval,
		now:      time.Now,
		after:    time.After,
		logger:   logger.With("component", "scheduler"),
	}
}

// Run calls tick immediately and then at every boundary, passing the current
// time truncated to the second. It blocks until ctx is cancelled.
func (t *Ticker) Run(ctx context.Context, tick func(now time.Time)) error {
	if t.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %v", t.interval)
	}

	t.logger.Debug("started", slog.Duration("interval", t.interval))

	tick(t.now().Truncate(time.Second))

	for {
		now := t.now()
		wait := NextBoundary(now, t.interval).Sub(now)
		if wait <= 0 {
			wait = retryDelay
		}

		select {
		case <-ctx.Done():
			t.logger.Debug("shutting down")
			return nil
		case <-t.after(wait):
			tick(t.now().Truncate(time.Second))
		}
	}
}

// NextBoundary returns the first multiple of interval after local midnight
// that is strictly later than now. With a 5 minute interval, 10:02:30 gives
// 10:05:00 and 10:05:00 gives 10:10:00.
func NextBoundary(now time.Time, interval time.Duration) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	elapsed := now.Sub(midnight)
	return midnight.Add((elapsed/interval + 1) * interval)
}
