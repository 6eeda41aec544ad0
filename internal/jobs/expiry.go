// Package jobs runs background maintenance for the console.
package jobs

// expiry.go cancels pending appointments whose date has passed.
//
// The job runs once on start, then every interval, until its context is
// cancelled. A failed run is logged and retried on the next tick; it never
// stops the scheduler.

import (
	"context"
	"log/slog"
	"time"
)

// Expirer cancels pending appointments dated before day.
type Expirer interface {
	CancelExpired(ctx context.Context, day time.Time) (int64, error)
}

// ExpiryScheduler periodically cancels expired appointments.
type ExpiryScheduler struct {
	expirer  Expirer
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewExpiryScheduler returns a scheduler running every interval.
func NewExpiryScheduler(e Expirer, interval time.Duration) *ExpiryScheduler {
	return &ExpiryScheduler{
		expirer:  e,
		interval: interval,
		now:      time.Now,
		logger:   slog.Default().With("job", "expiry"),
	}
}

// Run blocks until ctx is cancelled.
func (s *ExpiryScheduler) Run(ctx context.Context) {
	s.logger.Info("expiry scheduler started", "interval", s.interval.String())

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiry scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs one expiry pass and returns how many appointments it
// cancelled. Errors are logged, not returned.
func (s *ExpiryScheduler) RunOnce(ctx context.Context) int64 {
	start := time.Now()
	n, err := s.expirer.CancelExpired(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("expiry job failed", "error", err)
		}
		return 0
	}
	level := slog.LevelDebug
	if n > 0 {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, "expired appointments cancelled",
		"count", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n
}
