package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http/dto"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

// SessionHandler handles QR redemption and scan session lifecycle.
type SessionHandler struct {
	attendanceGate attendanceUseCase.AttendanceGate
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(attendanceGate attendanceUseCase.AttendanceGate, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		attendanceGate: attendanceGate,
		logger:         logger,
	}
}

// ValidateQRHandler redeems a scanned token and opens a scan session.
// POST /api/validate-qr
// Returns 200 OK with the session id, or 401 for any invalid token.
func (h *SessionHandler) ValidateQRHandler(c *gin.Context) {
	var req dto.ValidateQRRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := checkActor(c, req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.attendanceGate.RedeemToken(c.Request.Context(), req.Token, req.Email)
	if err != nil {
		handleGateError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateQRResponse{Valid: true, SessionID: output.SessionID})
}

// GetSessionHandler reports the owner of an open scan session.
// GET /api/session/:sessionId
// Returns 200 OK or 404 when the session is unknown, closed or expired.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.attendanceGate.SessionStatus(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// DeleteSessionHandler closes a scan session. Closing an unknown session is not an error.
// DELETE /api/session/:sessionId
// Returns 204 No Content.
func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	if _, err := h.attendanceGate.CancelSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// FaceStatusHandler reports whether a scan session still awaits its face check.
// GET /api/face-status/:sessionId
// Returns 200 OK; valid is false when no session is open.
func (h *SessionHandler) FaceStatusHandler(c *gin.Context) {
	session, err := h.attendanceGate.SessionStatus(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if apperrors.Is(err, qrDomain.ErrScanSessionNotFound) {
			c.JSON(http.StatusOK, dto.FaceStatusResponse{Valid: false})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FaceStatusResponse{Valid: true, Email: session.Subject})
}
