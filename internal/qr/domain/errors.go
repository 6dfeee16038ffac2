package domain

import (
	"github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

// QR token and scan session errors.
var (
	// ErrTokenMalformed indicates the token could not be decoded or split.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "qr token malformed")

	// ErrTokenBadSignature indicates the token signature does not match its payload.
	ErrTokenBadSignature = errors.Wrap(errors.ErrUnauthorized, "qr token signature invalid")

	// ErrTokenExpired indicates the token is older than the TTL or dated in the future.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "qr token expired")

	// ErrScanSessionNotFound indicates the scan session is unknown or evicted.
	ErrScanSessionNotFound = errors.Wrap(errors.ErrNotFound, "scan session not found")

	// ErrIssuance indicates a token could not be minted.
	ErrIssuance = errors.New("qr token issuance failed")
)
