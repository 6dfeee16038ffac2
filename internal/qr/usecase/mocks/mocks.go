// Package mocks provides testify mocks of the QR use case interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenIssuer.
func (m *MockTokenIssuer) Issue(
	ctx context.Context,
	metadata *qrDomain.SessionMetadata,
) (*qrDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrDomain.IssueTokenOutput), args.Error(1)
}

// MockTokenVerifier is a mock implementation of TokenVerifier.
type MockTokenVerifier struct {
	mock.Mock
}

// Verify mocks the Verify method of TokenVerifier.
func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (*qrDomain.SessionPayload, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrDomain.SessionPayload), args.Error(1)
}

// MockSessionStore is a mock implementation of SessionStore.
type MockSessionStore struct {
	mock.Mock
}

// Redeem mocks the Redeem method of SessionStore.
func (m *MockSessionStore) Redeem(
	ctx context.Context,
	payload *qrDomain.SessionPayload,
	subject string,
) (string, error) {
	args := m.Called(ctx, payload, subject)
	return args.String(0), args.Error(1)
}

// Lookup mocks the Lookup method of SessionStore.
func (m *MockSessionStore) Lookup(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrDomain.ScanSession), args.Error(1)
}

// Take mocks the Take method of SessionStore.
func (m *MockSessionStore) Take(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrDomain.ScanSession), args.Error(1)
}

// Restore mocks the Restore method of SessionStore.
func (m *MockSessionStore) Restore(ctx context.Context, session *qrDomain.ScanSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// Release mocks the Release method of SessionStore.
func (m *MockSessionStore) Release(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// Sweep mocks the Sweep method of SessionStore.
func (m *MockSessionStore) Sweep(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
