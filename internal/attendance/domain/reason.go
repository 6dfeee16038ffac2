package domain

import (
	"github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// Gate rejection reasons beyond the token and session reasons.
const (
	ReasonEmailMismatch qrDomain.Reason = "email_mismatch"
	ReasonLowConfidence qrDomain.Reason = "low_confidence"
	ReasonWriteFailed   qrDomain.Reason = "write_failed"
)

// ReasonOf maps any gate error to its rejection reason, empty for nil or for
// errors that are not rejections.
func ReasonOf(err error) qrDomain.Reason {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmailMismatch):
		return ReasonEmailMismatch
	case errors.Is(err, ErrLowConfidence):
		return ReasonLowConfidence
	case errors.Is(err, ErrWriteFailed):
		return ReasonWriteFailed
	default:
		return qrDomain.ReasonOf(err)
	}
}
