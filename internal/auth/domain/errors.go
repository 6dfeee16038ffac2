package domain

import (
	"github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials indicates the bearer credential failed verification.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrAuthenticationRequired indicates the endpoint needs a bearer credential.
	ErrAuthenticationRequired = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrInsufficientRole indicates the principal lacks the required role.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient role")
)
