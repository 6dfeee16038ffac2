package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http/dto"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

const (
	faceVerifiedMessage = "Face verified and attendance recorded"
	faceRejectedMessage = "Face verification confidence too low"
)

// FaceHandler handles face verification of open scan sessions.
type FaceHandler struct {
	attendanceGate attendanceUseCase.AttendanceGate
	logger         *slog.Logger
}

// NewFaceHandler creates a new face handler.
func NewFaceHandler(attendanceGate attendanceUseCase.AttendanceGate, logger *slog.Logger) *FaceHandler {
	return &FaceHandler{
		attendanceGate: attendanceGate,
		logger:         logger,
	}
}

// VerifyFaceHandler scores the submitted face and records attendance when the
// score passes.
// POST /api/verify-face
// Returns 200 OK on success and 422 with the computed confidence when it is too low.
func (h *FaceHandler) VerifyFaceHandler(c *gin.Context) {
	var req dto.FaceVerifyRequest

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

	verification, err := h.attendanceGate.VerifyFace(c.Request.Context(), &attendanceUseCase.FaceInput{
		SessionID: req.SessionID,
		Subject:   req.Email,
		Image:     req.Image,
	})
	if err != nil {
		if apperrors.Is(err, attendanceDomain.ErrLowConfidence) && verification != nil {
			h.logger.Info("face verification rejected",
				slog.String("session_id", req.SessionID),
				slog.Float64("confidence", verification.Confidence))
			c.JSON(http.StatusUnprocessableEntity, dto.FaceVerifyResponse{
				Success:    false,
				Message:    faceRejectedMessage,
				Confidence: verification.Confidence,
			})
			return
		}
		handleGateError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.FaceVerifyResponse{
		Success:    true,
		Message:    faceVerifiedMessage,
		Confidence: verification.Confidence,
	})
}
