package usecase

import (
	"context"
	"time"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/metrics"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

const metricsDomain = "attendance"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// attendanceGateWithMetrics decorates AttendanceGate with metrics instrumentation.
type attendanceGateWithMetrics struct {
	next    AttendanceGate
	metrics metrics.BusinessMetrics
}

// NewAttendanceGateWithMetrics wraps an AttendanceGate with metrics recording.
// Rejections are additionally counted by reason.
func NewAttendanceGateWithMetrics(gate AttendanceGate, m metrics.BusinessMetrics) AttendanceGate {
	return &attendanceGateWithMetrics{next: gate, metrics: m}
}

func (a *attendanceGateWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	a.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	a.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
	if reason := attendanceDomain.ReasonOf(err); reason != "" {
		a.metrics.RecordRejection(ctx, metricsDomain, reason.String())
	}
}

// RedeemToken records metrics for token redemption.
func (a *attendanceGateWithMetrics) RedeemToken(ctx context.Context, token, subject string) (*RedeemOutput, error) {
	start := time.Now()
	output, err := a.next.RedeemToken(ctx, token, subject)
	a.record(ctx, "gate_redeem", start, err)
	return output, err
}

// AuthorizeAttendance records metrics for attendance authorization.
func (a *attendanceGateWithMetrics) AuthorizeAttendance(
	ctx context.Context,
	input *AuthorizeInput,
) (*Authorization, error) {
	start := time.Now()
	authorization, err := a.next.AuthorizeAttendance(ctx, input)
	a.record(ctx, "gate_authorize", start, err)
	return authorization, err
}

// VerifyFace records metrics for face verification. The nested authorization
// is not counted separately.
func (a *attendanceGateWithMetrics) VerifyFace(ctx context.Context, input *FaceInput) (*FaceVerification, error) {
	start := time.Now()
	verification, err := a.next.VerifyFace(ctx, input)
	a.record(ctx, "gate_verify_face", start, err)
	return verification, err
}

// MarkFromToken records metrics for direct token marking.
func (a *attendanceGateWithMetrics) MarkFromToken(ctx context.Context, token, subject string) (*Authorization, error) {
	start := time.Now()
	authorization, err := a.next.MarkFromToken(ctx, token, subject)
	a.record(ctx, "gate_mark", start, err)
	return authorization, err
}

// SessionStatus delegates without metrics; the session store records lookups.
func (a *attendanceGateWithMetrics) SessionStatus(
	ctx context.Context,
	sessionID string,
) (*qrDomain.ScanSession, error) {
	return a.next.SessionStatus(ctx, sessionID)
}

// CancelSession delegates without metrics; the session store records releases.
func (a *attendanceGateWithMetrics) CancelSession(ctx context.Context, sessionID string) (bool, error) {
	return a.next.CancelSession(ctx, sessionID)
}

// attendanceUseCaseWithMetrics decorates AttendanceUseCase with metrics instrumentation.
type attendanceUseCaseWithMetrics struct {
	next    AttendanceUseCase
	metrics metrics.BusinessMetrics
}

// NewAttendanceUseCaseWithMetrics wraps an AttendanceUseCase with metrics recording.
func NewAttendanceUseCaseWithMetrics(useCase AttendanceUseCase, m metrics.BusinessMetrics) AttendanceUseCase {
	return &attendanceUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *attendanceUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	a.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	a.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (a *attendanceUseCaseWithMetrics) ListByStudent(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	start := time.Now()
	attendances, err := a.next.ListByStudent(ctx, email, offset, limit)
	a.record(ctx, "attendance_list_by_student", start, err)
	return attendances, err
}

func (a *attendanceUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	start := time.Now()
	attendances, err := a.next.List(ctx, offset, limit)
	a.record(ctx, "attendance_list", start, err)
	return attendances, err
}

func (a *attendanceUseCaseWithMetrics) ListByClass(
	ctx context.Context,
	filter attendanceDomain.ClassFilter,
) ([]*attendanceDomain.Attendance, error) {
	start := time.Now()
	attendances, err := a.next.ListByClass(ctx, filter)
	a.record(ctx, "attendance_list_by_class", start, err)
	return attendances, err
}

func (a *attendanceUseCaseWithMetrics) StudentStats(
	ctx context.Context,
	email string,
) (*attendanceDomain.Stats, error) {
	start := time.Now()
	stats, err := a.next.StudentStats(ctx, email)
	a.record(ctx, "attendance_student_stats", start, err)
	return stats, err
}

func (a *attendanceUseCaseWithMetrics) ListRecords(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error) {
	start := time.Now()
	records, err := a.next.ListRecords(ctx)
	a.record(ctx, "record_list", start, err)
	return records, err
}

func (a *attendanceUseCaseWithMetrics) ListStudentRecords(
	ctx context.Context,
	email string,
) ([]*attendanceDomain.AttendanceRecord, error) {
	start := time.Now()
	records, err := a.next.ListStudentRecords(ctx, email)
	a.record(ctx, "record_list_by_student", start, err)
	return records, err
}

func (a *attendanceUseCaseWithMetrics) RecordStats(ctx context.Context) (*attendanceDomain.Stats, error) {
	start := time.Now()
	stats, err := a.next.RecordStats(ctx)
	a.record(ctx, "record_stats", start, err)
	return stats, err
}
