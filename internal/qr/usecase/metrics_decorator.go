package usecase

import (
	"context"
	"time"

	"github.com/aru-nika-08/attendance-tracking-system/internal/metrics"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

const metricsDomain = "qr"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// tokenIssuerWithMetrics decorates TokenIssuer with metrics instrumentation.
type tokenIssuerWithMetrics struct {
	next    TokenIssuer
	metrics metrics.BusinessMetrics
}

// NewTokenIssuerWithMetrics wraps a TokenIssuer with metrics recording.
func NewTokenIssuerWithMetrics(issuer TokenIssuer, m metrics.BusinessMetrics) TokenIssuer {
	return &tokenIssuerWithMetrics{next: issuer, metrics: m}
}

// Issue records metrics for token issuance.
func (t *tokenIssuerWithMetrics) Issue(
	ctx context.Context,
	metadata *qrDomain.SessionMetadata,
) (*qrDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, metadata)

	status := statusOf(err)
	t.metrics.RecordOperation(ctx, metricsDomain, "token_issue", status)
	t.metrics.RecordDuration(ctx, metricsDomain, "token_issue", time.Since(start), status)

	return output, err
}

// tokenVerifierWithMetrics decorates TokenVerifier with metrics instrumentation.
type tokenVerifierWithMetrics struct {
	next    TokenVerifier
	metrics metrics.BusinessMetrics
}

// NewTokenVerifierWithMetrics wraps a TokenVerifier with metrics recording.
// Rejections are additionally counted by reason.
func NewTokenVerifierWithMetrics(verifier TokenVerifier, m metrics.BusinessMetrics) TokenVerifier {
	return &tokenVerifierWithMetrics{next: verifier, metrics: m}
}

// Verify records metrics for token verification.
func (t *tokenVerifierWithMetrics) Verify(ctx context.Context, token string) (*qrDomain.SessionPayload, error) {
	start := time.Now()
	payload, err := t.next.Verify(ctx, token)

	status := statusOf(err)
	t.metrics.RecordOperation(ctx, metricsDomain, "token_verify", status)
	t.metrics.RecordDuration(ctx, metricsDomain, "token_verify", time.Since(start), status)
	if reason := qrDomain.ReasonOf(err); reason != "" {
		t.metrics.RecordRejection(ctx, metricsDomain, reason.String())
	}

	return payload, err
}

// sessionStoreWithMetrics decorates SessionStore with metrics instrumentation
// and keeps the active session gauge in step with the store.
type sessionStoreWithMetrics struct {
	next    SessionStore
	metrics metrics.BusinessMetrics
}

// NewSessionStoreWithMetrics wraps a SessionStore with metrics recording.
func NewSessionStoreWithMetrics(store SessionStore, m metrics.BusinessMetrics) SessionStore {
	return &sessionStoreWithMetrics{next: store, metrics: m}
}

func (s *sessionStoreWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	s.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	s.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Redeem records metrics for session creation.
func (s *sessionStoreWithMetrics) Redeem(
	ctx context.Context,
	payload *qrDomain.SessionPayload,
	subject string,
) (string, error) {
	start := time.Now()
	sessionID, err := s.next.Redeem(ctx, payload, subject)
	s.record(ctx, "session_redeem", start, err)
	if err == nil {
		s.metrics.AddActiveSessions(ctx, 1)
	}
	return sessionID, err
}

// Lookup records metrics for session lookup. A missing session is not an error.
func (s *sessionStoreWithMetrics) Lookup(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	start := time.Now()
	session, err := s.next.Lookup(ctx, sessionID)
	if qrDomain.ReasonOf(err) == qrDomain.ReasonNotFound {
		s.record(ctx, "session_lookup", start, nil)
	} else {
		s.record(ctx, "session_lookup", start, err)
	}
	return session, err
}

// Take records metrics for session claims. Losing a claim is not an error.
func (s *sessionStoreWithMetrics) Take(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	start := time.Now()
	session, err := s.next.Take(ctx, sessionID)
	if qrDomain.ReasonOf(err) == qrDomain.ReasonNotFound {
		s.record(ctx, "session_take", start, nil)
	} else {
		s.record(ctx, "session_take", start, err)
	}
	if err == nil {
		s.metrics.AddActiveSessions(ctx, -1)
	}
	return session, err
}

// Restore records metrics for sessions put back after a failed write.
func (s *sessionStoreWithMetrics) Restore(ctx context.Context, session *qrDomain.ScanSession) error {
	start := time.Now()
	err := s.next.Restore(ctx, session)
	s.record(ctx, "session_restore", start, err)
	if err == nil {
		s.metrics.AddActiveSessions(ctx, 1)
	}
	return err
}

// Release records metrics for session removal.
func (s *sessionStoreWithMetrics) Release(ctx context.Context, sessionID string) (bool, error) {
	start := time.Now()
	removed, err := s.next.Release(ctx, sessionID)
	s.record(ctx, "session_release", start, err)
	if removed {
		s.metrics.AddActiveSessions(ctx, -1)
	}
	return removed, err
}

// Sweep records metrics for eviction passes.
func (s *sessionStoreWithMetrics) Sweep(ctx context.Context, now time.Time) (int, error) {
	start := time.Now()
	removed, err := s.next.Sweep(ctx, now)
	s.record(ctx, "session_sweep", start, err)
	if removed > 0 {
		s.metrics.AddActiveSessions(ctx, -int64(removed))
	}
	return removed, err
}
