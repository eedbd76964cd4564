package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/insuranceguard/insuranceguard/internal/logger"
)

// SweepScheduler runs the dunning sweep on a fixed interval. A failed run
// is retried with exponential backoff before the scheduler falls back to
// waiting for the next tick; the sweep itself is idempotent, so a retry
// after a partial run only picks up what is still eligible.
type SweepScheduler struct {
	dunning  DunningService
	interval time.Duration
	log      *logger.Logger
}

func NewSweepScheduler(dunning DunningService, interval time.Duration, log *logger.Logger) *SweepScheduler {
	return &SweepScheduler{dunning: dunning, interval: interval, log: log}
}

// Run blocks until ctx is done. The first sweep runs immediately so a
// restart never waits a full interval to catch up.
func (s *SweepScheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Infow("dunning sweep scheduler disabled")
		return
	}

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *SweepScheduler) runOnce(ctx context.Context) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 5 * time.Minute

	err := backoff.Retry(func() error {
		_, err := s.dunning.Sweep(ctx)
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		s.log.Errorw("dunning sweep gave up after retries", "error", err)
	}
}
