package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"
)

const (
	simulatedMinScore  = 0.70
	simulatedScoreSpan = 0.25
)

// simulatedFaceScorer stands in for a face recognition backend. It waits for
// delay and returns a score uniform in [0.70, 0.95).
type simulatedFaceScorer struct {
	delay  time.Duration
	random func() float64
	logger *slog.Logger
}

// NewSimulatedFaceScorer creates a FaceScorer returning random passing scores
// after delay.
func NewSimulatedFaceScorer(delay time.Duration, logger *slog.Logger) FaceScorer {
	return &simulatedFaceScorer{
		delay:  delay,
		random: rand.Float64,
		logger: logger,
	}
}

// Score waits for the configured delay, honouring ctx, then returns a score.
func (s *simulatedFaceScorer) Score(ctx context.Context, image []byte, subject string) (float64, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}

	score := simulatedMinScore + s.random()*simulatedScoreSpan

	s.logger.Debug("simulated face verification",
		slog.String("subject", subject),
		slog.Int("image_bytes", len(image)),
		slog.Float64("confidence", score))

	return score, nil
}
