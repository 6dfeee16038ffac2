package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSimulatedFaceScorer_Score(t *testing.T) {
	t.Run("Success_ScoreWithinRange", func(t *testing.T) {
		scorer := NewSimulatedFaceScorer(0, discardLogger())

		for range 200 {
			score, err := scorer.Score(context.Background(), []byte("img"), "a@x.edu")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.70)
			assert.LessOrEqual(t, score, 0.95)
		}
	})

	t.Run("Success_Bounds", func(t *testing.T) {
		scorer := &simulatedFaceScorer{random: func() float64 { return 0 }, logger: discardLogger()}

		score, err := scorer.Score(context.Background(), nil, "a@x.edu")
		require.NoError(t, err)
		assert.InDelta(t, 0.70, score, 1e-9)

		scorer.random = func() float64 { return 0.999999 }
		score, err = scorer.Score(context.Background(), nil, "a@x.edu")
		require.NoError(t, err)
		assert.InDelta(t, 0.95, score, 1e-5)
	})

	t.Run("Success_WaitsForDelay", func(t *testing.T) {
		scorer := NewSimulatedFaceScorer(20*time.Millisecond, discardLogger())

		start := time.Now()
		_, err := scorer.Score(context.Background(), []byte("img"), "a@x.edu")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("Error_ContextCanceled", func(t *testing.T) {
		scorer := NewSimulatedFaceScorer(time.Hour, discardLogger())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		score, err := scorer.Score(ctx, []byte("img"), "a@x.edu")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, score)
	})
}
