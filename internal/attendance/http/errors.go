// Package http provides the HTTP handlers for QR redemption, scan sessions,
// face verification and attendance queries.
package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

// handleGateError answers every token verification failure with the same 401
// and maps the remaining errors through HandleErrorGin.
func handleGateError(c *gin.Context, err error, logger *slog.Logger) {
	if reason := qrDomain.ReasonOf(err); reason.IsTokenFailure() {
		httputil.HandleTokenRejectedGin(c, reason.String(), logger)
		return
	}
	httputil.HandleErrorGin(c, err, logger)
}

// checkActor rejects an authenticated principal acting for someone else.
// Anonymous requests pass; routes that need a principal enforce it in middleware.
func checkActor(c *gin.Context, email string) error {
	principal, ok := authDomain.PrincipalFromContext(c.Request.Context())
	if !ok {
		return nil
	}
	if !principal.CanActFor(email) {
		return attendanceDomain.ErrActorNotAllowed
	}
	return nil
}

// emailParam reads and validates an email taken from the path or query string.
func emailParam(value string) (string, error) {
	if err := validation.Validate(value, validation.Required, customValidation.Email); err != nil {
		return "", customValidation.WrapValidationError(err)
	}
	return value, nil
}
