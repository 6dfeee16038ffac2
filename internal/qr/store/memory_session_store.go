// Package store provides SessionStore implementations: an in-process map for
// single-instance deployments and a Redis store shared between instances.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
)

// maxIDAttempts bounds retries on session id collision.
const maxIDAttempts = 3

// MemorySessionStore keeps scan sessions in a map guarded by a RWMutex.
// Sessions older than maxAge are invisible to Lookup and removed by Sweep.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*qrDomain.ScanSession
	random   qrService.RandomSource
	maxAge   time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore(random qrService.RandomSource, maxAge time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*qrDomain.ScanSession),
		random:   random,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Redeem registers a new session for subject.
func (s *MemorySessionStore) Redeem(
	ctx context.Context,
	payload *qrDomain.SessionPayload,
	subject string,
) (string, error) {
	if payload == nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "session payload is required")
	}

	now := s.now()
	session := &qrDomain.ScanSession{
		Subject:   subject,
		Payload:   payload,
		CreatedAt: now.UTC(),
	}
	if session.ExpiredAt(now, s.maxAge) {
		return "", qrDomain.ErrTokenExpired
	}

	for range maxIDAttempts {
		id, err := s.random.SessionID()
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		if _, exists := s.sessions[id]; !exists {
			session.ID = id
			s.sessions[id] = session
			s.mu.Unlock()
			return id, nil
		}
		s.mu.Unlock()
	}

	return "", fmt.Errorf("failed to allocate unique session id after %d attempts", maxIDAttempts)
}

// Lookup returns a copy of the session.
func (s *MemorySessionStore) Lookup(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || session.ExpiredAt(s.now(), s.maxAge) {
		return nil, qrDomain.ErrScanSessionNotFound
	}

	found := *session
	return &found, nil
}

// Take removes and returns the session under the write lock. Expired
// sessions are left for Sweep.
func (s *MemorySessionStore) Take(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.ExpiredAt(s.now(), s.maxAge) {
		return nil, qrDomain.ErrScanSessionNotFound
	}
	delete(s.sessions, sessionID)

	taken := *session
	return &taken, nil
}

// Restore stores a copy of a session previously returned by Take.
func (s *MemorySessionStore) Restore(ctx context.Context, session *qrDomain.ScanSession) error {
	if session == nil || session.ID == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "scan session is required")
	}
	if session.ExpiredAt(s.now(), s.maxAge) {
		return qrDomain.ErrScanSessionNotFound
	}

	restored := *session
	s.mu.Lock()
	s.sessions[session.ID] = &restored
	s.mu.Unlock()
	return nil
}

// Release removes the session and reports whether it existed.
func (s *MemorySessionStore) Release(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(s.sessions, sessionID)
	return true, nil
}

// Sweep removes every session older than maxAge at now.
func (s *MemorySessionStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.ExpiredAt(now, s.maxAge) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
