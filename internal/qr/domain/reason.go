package domain

import (
	"github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

// Reason is the stable, loggable cause of a rejected scan.
type Reason string

// Token and session rejection reasons.
const (
	ReasonMalformed    Reason = "malformed"
	ReasonBadSignature Reason = "bad_signature"
	ReasonExpired      Reason = "expired"
	ReasonNotFound     Reason = "not_found"
)

// ReasonOf maps a token or session error to its reason. It returns an empty
// reason for nil and for errors outside this package.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, ErrTokenBadSignature):
		return ReasonBadSignature
	case errors.Is(err, ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, ErrScanSessionNotFound):
		return ReasonNotFound
	default:
		return ""
	}
}

// IsTokenFailure reports whether the reason came from token verification.
func (r Reason) IsTokenFailure() bool {
	return r == ReasonMalformed || r == ReasonBadSignature || r == ReasonExpired
}

func (r Reason) String() string {
	return string(r)
}
