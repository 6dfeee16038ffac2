// Package mocks provides testify mocks of the attendance use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// MockAttendanceGate is a mock implementation of AttendanceGate.
type MockAttendanceGate struct {
	mock.Mock
}

// RedeemToken mocks the RedeemToken method of AttendanceGate.
func (m *MockAttendanceGate) RedeemToken(
	ctx context.Context,
	token, subject string,
) (*attendanceUseCase.RedeemOutput, error) {
	args := m.Called(ctx, token, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceUseCase.RedeemOutput), args.Error(1)
}

// AuthorizeAttendance mocks the AuthorizeAttendance method of AttendanceGate.
func (m *MockAttendanceGate) AuthorizeAttendance(
	ctx context.Context,
	input *attendanceUseCase.AuthorizeInput,
) (*attendanceUseCase.Authorization, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceUseCase.Authorization), args.Error(1)
}

// VerifyFace mocks the VerifyFace method of AttendanceGate.
func (m *MockAttendanceGate) VerifyFace(
	ctx context.Context,
	input *attendanceUseCase.FaceInput,
) (*attendanceUseCase.FaceVerification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceUseCase.FaceVerification), args.Error(1)
}

// MarkFromToken mocks the MarkFromToken method of AttendanceGate.
func (m *MockAttendanceGate) MarkFromToken(
	ctx context.Context,
	token, subject string,
) (*attendanceUseCase.Authorization, error) {
	args := m.Called(ctx, token, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceUseCase.Authorization), args.Error(1)
}

// SessionStatus mocks the SessionStatus method of AttendanceGate.
func (m *MockAttendanceGate) SessionStatus(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*qrDomain.ScanSession), args.Error(1)
}

// CancelSession mocks the CancelSession method of AttendanceGate.
func (m *MockAttendanceGate) CancelSession(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

// MockAttendanceUseCase is a mock implementation of AttendanceUseCase.
type MockAttendanceUseCase struct {
	mock.Mock
}

// ListByStudent mocks the ListByStudent method of AttendanceUseCase.
func (m *MockAttendanceUseCase) ListByStudent(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	args := m.Called(ctx, email, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Attendance), args.Error(1)
}

// List mocks the List method of AttendanceUseCase.
func (m *MockAttendanceUseCase) List(ctx context.Context, offset, limit int) ([]*attendanceDomain.Attendance, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Attendance), args.Error(1)
}

// ListByClass mocks the ListByClass method of AttendanceUseCase.
func (m *MockAttendanceUseCase) ListByClass(
	ctx context.Context,
	filter attendanceDomain.ClassFilter,
) ([]*attendanceDomain.Attendance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Attendance), args.Error(1)
}

// StudentStats mocks the StudentStats method of AttendanceUseCase.
func (m *MockAttendanceUseCase) StudentStats(ctx context.Context, email string) (*attendanceDomain.Stats, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceDomain.Stats), args.Error(1)
}

// ListRecords mocks the ListRecords method of AttendanceUseCase.
func (m *MockAttendanceUseCase) ListRecords(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.AttendanceRecord), args.Error(1)
}

// ListStudentRecords mocks the ListStudentRecords method of AttendanceUseCase.
func (m *MockAttendanceUseCase) ListStudentRecords(
	ctx context.Context,
	email string,
) ([]*attendanceDomain.AttendanceRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.AttendanceRecord), args.Error(1)
}

// RecordStats mocks the RecordStats method of AttendanceUseCase.
func (m *MockAttendanceUseCase) RecordStats(ctx context.Context) (*attendanceDomain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceDomain.Stats), args.Error(1)
}

// MockAttendanceWriter is a mock implementation of AttendanceWriter.
type MockAttendanceWriter struct {
	mock.Mock
}

// Persist mocks the Persist method of AttendanceWriter.
func (m *MockAttendanceWriter) Persist(ctx context.Context, event *attendanceDomain.AttendanceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockAttendanceRepository is a mock implementation of AttendanceRepository.
type MockAttendanceRepository struct {
	mock.Mock
}

// Create mocks the Create method of AttendanceRepository.
func (m *MockAttendanceRepository) Create(ctx context.Context, attendance *attendanceDomain.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

// ListByStudent mocks the ListByStudent method of AttendanceRepository.
func (m *MockAttendanceRepository) ListByStudent(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	args := m.Called(ctx, email, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Attendance), args.Error(1)
}

// List mocks the List method of AttendanceRepository.
func (m *MockAttendanceRepository) List(ctx context.Context, offset, limit int) ([]*attendanceDomain.Attendance, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Attendance), args.Error(1)
}

// ListByClass mocks the ListByClass method of AttendanceRepository.
func (m *MockAttendanceRepository) ListByClass(
	ctx context.Context,
	filter attendanceDomain.ClassFilter,
) ([]*attendanceDomain.Attendance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.Attendance), args.Error(1)
}

// StatsByStudent mocks the StatsByStudent method of AttendanceRepository.
func (m *MockAttendanceRepository) StatsByStudent(ctx context.Context, email string) (*attendanceDomain.Stats, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*attendanceDomain.Stats), args.Error(1)
}

// MockAttendanceRecordRepository is a mock implementation of AttendanceRecordRepository.
type MockAttendanceRecordRepository struct {
	mock.Mock
}

// Create mocks the Create method of AttendanceRecordRepository.
func (m *MockAttendanceRecordRepository) Create(ctx context.Context, record *attendanceDomain.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// List mocks the List method of AttendanceRecordRepository.
func (m *MockAttendanceRecordRepository) List(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.AttendanceRecord), args.Error(1)
}

// ListByEmail mocks the ListByEmail method of AttendanceRecordRepository.
func (m *MockAttendanceRecordRepository) ListByEmail(
	ctx context.Context,
	email string,
) ([]*attendanceDomain.AttendanceRecord, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*attendanceDomain.AttendanceRecord), args.Error(1)
}

// MockFaceScorer is a mock implementation of service.FaceScorer.
type MockFaceScorer struct {
	mock.Mock
}

// Score mocks the Score method of FaceScorer.
func (m *MockFaceScorer) Score(ctx context.Context, image []byte, subject string) (float64, error) {
	args := m.Called(ctx, image, subject)
	return args.Get(0).(float64), args.Error(1)
}
