// Package usecase implements the attendance gate, which turns verified QR
// tokens into authorized attendance writes, and the attendance queries.
package usecase

import (
	"context"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// AttendanceRepository persists attendance rows in the relational database.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *attendanceDomain.Attendance) error
	ListByStudent(ctx context.Context, email string, offset, limit int) ([]*attendanceDomain.Attendance, error)
	List(ctx context.Context, offset, limit int) ([]*attendanceDomain.Attendance, error)
	ListByClass(ctx context.Context, filter attendanceDomain.ClassFilter) ([]*attendanceDomain.Attendance, error)
	StatsByStudent(ctx context.Context, email string) (*attendanceDomain.Stats, error)
}

// AttendanceRecordRepository persists attendance documents.
type AttendanceRecordRepository interface {
	Create(ctx context.Context, record *attendanceDomain.AttendanceRecord) error
	List(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error)
	ListByEmail(ctx context.Context, email string) ([]*attendanceDomain.AttendanceRecord, error)
}

// AttendanceWriter persists one authorized attendance event. Failures wrap
// ErrWriteFailed.
type AttendanceWriter interface {
	Persist(ctx context.Context, event *attendanceDomain.AttendanceEvent) error
}

// RedeemOutput is the result of redeeming a QR token.
type RedeemOutput struct {
	SessionID string
	Payload   *qrDomain.SessionPayload
}

// AuthorizeInput references a scan session and the identity using it.
// Confidence is nil when no face check was made.
type AuthorizeInput struct {
	SessionID  string
	Subject    string
	Confidence *float64
}

// FaceInput carries a face image for a scan session.
type FaceInput struct {
	SessionID string
	Subject   string
	Image     string
}

// Authorization describes an attendance write that was persisted.
type Authorization struct {
	AttendanceID string
	SessionID    string
	Subject      string
	Payload      *qrDomain.SessionPayload
	Confidence   float64
	Status       attendanceDomain.Status
	MarkedBy     string
}

// FaceVerification is the outcome of a face check. Confidence is set whenever
// a score was computed, including when the score was too low.
type FaceVerification struct {
	Confidence    float64
	Authorization *Authorization
}

// AttendanceGate orchestrates token verification, scan sessions, the optional
// face check and the single attendance write of an attempt.
type AttendanceGate interface {
	// RedeemToken verifies token and opens a scan session for subject.
	RedeemToken(ctx context.Context, token, subject string) (*RedeemOutput, error)

	// AuthorizeAttendance persists attendance for an open scan session and
	// closes it.
	AuthorizeAttendance(ctx context.Context, input *AuthorizeInput) (*Authorization, error)

	// VerifyFace scores a face image and authorizes attendance with the score.
	VerifyFace(ctx context.Context, input *FaceInput) (*FaceVerification, error)

	// MarkFromToken verifies token and persists attendance without a scan session.
	MarkFromToken(ctx context.Context, token, subject string) (*Authorization, error)

	// SessionStatus returns an open scan session.
	SessionStatus(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error)

	// CancelSession closes a scan session and reports whether one was open.
	CancelSession(ctx context.Context, sessionID string) (bool, error)
}

// AttendanceUseCase answers attendance queries over both stores.
type AttendanceUseCase interface {
	ListByStudent(ctx context.Context, email string, offset, limit int) ([]*attendanceDomain.Attendance, error)
	List(ctx context.Context, offset, limit int) ([]*attendanceDomain.Attendance, error)
	ListByClass(ctx context.Context, filter attendanceDomain.ClassFilter) ([]*attendanceDomain.Attendance, error)
	StudentStats(ctx context.Context, email string) (*attendanceDomain.Stats, error)
	ListRecords(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error)
	ListStudentRecords(ctx context.Context, email string) ([]*attendanceDomain.AttendanceRecord, error)
	RecordStats(ctx context.Context) (*attendanceDomain.Stats, error)
}
