package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http/dto"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

// AttendanceHandler handles attendance writes and queries.
type AttendanceHandler struct {
	attendanceGate    attendanceUseCase.AttendanceGate
	attendanceUseCase attendanceUseCase.AttendanceUseCase
	dashboardURL      string
	logger            *slog.Logger
}

// NewAttendanceHandler creates a new attendance handler. dashboardURL is the
// redirect target of the scan link.
func NewAttendanceHandler(
	attendanceGate attendanceUseCase.AttendanceGate,
	attendanceUseCase attendanceUseCase.AttendanceUseCase,
	dashboardURL string,
	logger *slog.Logger,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceGate:    attendanceGate,
		attendanceUseCase: attendanceUseCase,
		dashboardURL:      dashboardURL,
		logger:            logger,
	}
}

// CreateHandler records attendance for an open scan session.
// POST /api/attendance - Requires authentication; students may only act for themselves.
// Returns 201 Created with the recorded attendance.
func (h *AttendanceHandler) CreateHandler(c *gin.Context) {
	var req dto.AttendanceRequest

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

	authorization, err := h.attendanceGate.AuthorizeAttendance(c.Request.Context(), &attendanceUseCase.AuthorizeInput{
		SessionID:  req.SessionID,
		Subject:    req.Email,
		Confidence: req.Confidence,
	})
	if err != nil {
		handleGateError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAuthorizationToResponse(authorization))
}

// MarkHandler records attendance straight from a token, without a scan session.
// POST /api/attendance/mark?studentEmail=&token=
// Returns 201 Created, or 401 for any invalid token.
func (h *AttendanceHandler) MarkHandler(c *gin.Context) {
	var query dto.MarkQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := checkActor(c, query.StudentEmail); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	authorization, err := h.attendanceGate.MarkFromToken(c.Request.Context(), query.Token, query.StudentEmail)
	if err != nil {
		handleGateError(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAuthorizationToResponse(authorization))
}

// ScanHandler records attendance from a clickable QR link and always
// redirects to the dashboard; failures are only logged.
// GET /api/attendance/scan?email=&token=
// Returns 302 Found.
func (h *AttendanceHandler) ScanHandler(c *gin.Context) {
	email := c.Query("email")
	token := c.Query("token")

	if _, err := emailParam(email); err != nil || token == "" {
		h.logger.Warn("scan link ignored: missing email or token")
		c.Redirect(http.StatusFound, h.dashboardURL)
		return
	}

	if _, err := h.attendanceGate.MarkFromToken(c.Request.Context(), token, email); err != nil {
		h.logger.Warn("scan link attendance not recorded",
			slog.String("reason", attendanceDomain.ReasonOf(err).String()),
			slog.Any("error", err))
	}

	c.Redirect(http.StatusFound, h.dashboardURL)
}

// ListByStudentHandler lists a student's attendance rows, newest first.
// GET /api/attendance/student/:email - Requires authentication; self or admin.
// Query: offset, limit.
func (h *AttendanceHandler) ListByStudentHandler(c *gin.Context) {
	email, err := emailParam(c.Param("email"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := checkActor(c, email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	attendances, err := h.attendanceUseCase.ListByStudent(c.Request.Context(), email, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAttendancesToListResponse(attendances))
}

// ListHandler lists all attendance rows, newest first.
// GET /api/attendance/all - Requires the admin role.
// Query: offset, limit.
func (h *AttendanceHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	attendances, err := h.attendanceUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAttendancesToListResponse(attendances))
}

// ListByClassHandler lists the attendance of one class period.
// GET /api/attendance/class?className=&date=&period= - Requires the admin role.
func (h *AttendanceHandler) ListByClassHandler(c *gin.Context) {
	var query dto.ClassQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := query.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	attendances, err := h.attendanceUseCase.ListByClass(c.Request.Context(), attendanceDomain.ClassFilter{
		ClassName:   query.ClassName,
		SessionDate: query.Date,
		Period:      query.Period,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAttendancesToListResponse(attendances))
}

// StudentStatsHandler summarizes a student's attendance rows.
// GET /api/attendance/student/:email/stats - Requires authentication; self or admin.
func (h *AttendanceHandler) StudentStatsHandler(c *gin.Context) {
	email, err := emailParam(c.Param("email"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := checkActor(c, email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	stats, err := h.attendanceUseCase.StudentStats(c.Request.Context(), email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListRecordsHandler lists every attendance document, newest first.
// GET /api/list-attendance - Requires the admin role.
func (h *AttendanceHandler) ListRecordsHandler(c *gin.Context) {
	records, err := h.attendanceUseCase.ListRecords(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// StudentRecordsHandler lists a student's attendance documents.
// GET /api/student-attendance?email= - Requires authentication; self or admin.
func (h *AttendanceHandler) StudentRecordsHandler(c *gin.Context) {
	email, err := emailParam(c.Query("email"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := checkActor(c, email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	records, err := h.attendanceUseCase.ListStudentRecords(c.Request.Context(), email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

// RecordStatsHandler summarizes all attendance documents.
// GET /api/attendance-stats - Requires the admin role.
func (h *AttendanceHandler) RecordStatsHandler(c *gin.Context) {
	stats, err := h.attendanceUseCase.RecordStats(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, stats)
}
