// Package http provides the HTTP handler that mints QR tokens for staff.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	"github.com/aru-nika-08/attendance-tracking-system/internal/qr/http/dto"
	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

// QRHandler handles QR token issuance.
type QRHandler struct {
	tokenIssuer qrUseCase.TokenIssuer
	logger      *slog.Logger
}

// NewQRHandler creates a new QR handler.
func NewQRHandler(tokenIssuer qrUseCase.TokenIssuer, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		tokenIssuer: tokenIssuer,
		logger:      logger,
	}
}

// GenerateHandler mints a token for the described class session.
// POST /api/generate-qr - Requires the admin role.
// Returns 200 OK with the token and its expiry in epoch milliseconds.
func (h *QRHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateQRRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenIssuer.Issue(c.Request.Context(), req.ToMetadata())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssueOutputToResponse(output))
}
