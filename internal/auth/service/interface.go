// Package service provides bearer credential verification.
package service

import (
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
)

// PrincipalVerifier turns a bearer credential into a principal.
type PrincipalVerifier interface {
	// Verify returns ErrInvalidCredentials for any credential it cannot accept.
	Verify(token string) (*authDomain.Principal, error)
}
