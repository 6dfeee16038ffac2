// Package service provides face scoring and image decoding for the attendance gate.
package service

import "context"

// FaceScorer scores how well image matches the enrolled face of subject.
// Scores are in [0, 1].
type FaceScorer interface {
	Score(ctx context.Context, image []byte, subject string) (float64, error)
}
