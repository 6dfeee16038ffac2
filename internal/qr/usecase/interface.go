// Package usecase implements QR token issuance and verification and the
// lifecycle of scan sessions created from verified tokens.
package usecase

import (
	"context"
	"time"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// SessionStore holds scan sessions between token redemption and attendance
// authorization. Single-key operations are linearizable.
type SessionStore interface {
	// Redeem registers a session for subject and returns its fresh identifier.
	Redeem(ctx context.Context, payload *qrDomain.SessionPayload, subject string) (string, error)

	// Lookup returns the session or ErrScanSessionNotFound when it is unknown,
	// released or older than the configured maximum age.
	Lookup(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error)

	// Take atomically removes and returns the session. Of several concurrent
	// callers at most one receives it; the rest get ErrScanSessionNotFound.
	Take(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error)

	// Restore puts back a session obtained from Take. It returns
	// ErrScanSessionNotFound when the session has already expired.
	Restore(ctx context.Context, session *qrDomain.ScanSession) error

	// Release removes the session. It reports whether a session was removed
	// and is safe to call repeatedly.
	Release(ctx context.Context, sessionID string) (bool, error)

	// Sweep removes every session older than the maximum age at now and
	// returns how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// TokenIssuer mints signed QR tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, metadata *qrDomain.SessionMetadata) (*qrDomain.IssueTokenOutput, error)
}

// TokenVerifier checks QR tokens. Failures wrap ErrTokenMalformed,
// ErrTokenBadSignature or ErrTokenExpired.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*qrDomain.SessionPayload, error)
}

// SessionSweeper periodically evicts stale scan sessions.
type SessionSweeper interface {
	Start(ctx context.Context) error
	SweepOnce(ctx context.Context) (int, error)
}
