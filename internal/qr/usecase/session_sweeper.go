package usecase

import (
	"context"
	"log/slog"
	"time"
)

// sessionSweeper evicts scan sessions that outlived their maximum age.
type sessionSweeper struct {
	store    SessionStore
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewSessionSweeper creates a SessionSweeper running every interval.
func NewSessionSweeper(store SessionStore, interval time.Duration, logger *slog.Logger) SessionSweeper {
	return &sessionSweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Start sweeps on every tick until ctx is done and then returns ctx.Err().
func (s *sessionSweeper) Start(ctx context.Context) error {
	s.logger.Info("starting scan session sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping scan session sweeper")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.Error("failed to sweep scan sessions", slog.Any("error", err))
			}
		}
	}
}

// SweepOnce runs a single eviction pass.
func (s *sessionSweeper) SweepOnce(ctx context.Context) (int, error) {
	removed, err := s.store.Sweep(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Debug("scan sessions evicted", slog.Int("count", removed))
	}

	return removed, nil
}
