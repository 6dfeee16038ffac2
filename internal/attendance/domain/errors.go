package domain

import (
	"github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

// Attendance gate errors.
var (
	// ErrEmailMismatch indicates the caller is not the identity that redeemed the scan session.
	ErrEmailMismatch = errors.Wrap(errors.ErrForbidden, "email does not match scan session")

	// ErrLowConfidence indicates the face score is below the acceptance threshold.
	ErrLowConfidence = errors.Wrap(errors.ErrRejected, "face verification confidence too low")

	// ErrWriteFailed indicates the attendance could not be persisted.
	ErrWriteFailed = errors.New("attendance write failed")

	// ErrActorNotAllowed indicates a student acting on another student's attendance.
	ErrActorNotAllowed = errors.Wrap(errors.ErrForbidden, "not allowed to act for another student")

	// ErrInvalidImage indicates the face image is not valid base64 data.
	ErrInvalidImage = errors.Wrap(errors.ErrInvalidInput, "face image is not valid base64")

	// ErrInvalidConfidence indicates a confidence outside [0, 1].
	ErrInvalidConfidence = errors.Wrap(errors.ErrInvalidInput, "confidence must be between 0 and 1")

	// ErrInvalidSubject indicates an empty subject identity.
	ErrInvalidSubject = errors.Wrap(errors.ErrInvalidInput, "subject identity is required")
)
