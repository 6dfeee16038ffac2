package usecase

import (
	"context"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
)

type attendanceUseCase struct {
	attendanceRepo AttendanceRepository
	recordRepo     AttendanceRecordRepository
}

// NewAttendanceUseCase creates the attendance query use case.
func NewAttendanceUseCase(
	attendanceRepo AttendanceRepository,
	recordRepo AttendanceRecordRepository,
) AttendanceUseCase {
	return &attendanceUseCase{
		attendanceRepo: attendanceRepo,
		recordRepo:     recordRepo,
	}
}

func (a *attendanceUseCase) ListByStudent(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	return a.attendanceRepo.ListByStudent(ctx, email, offset, limit)
}

func (a *attendanceUseCase) List(ctx context.Context, offset, limit int) ([]*attendanceDomain.Attendance, error) {
	return a.attendanceRepo.List(ctx, offset, limit)
}

func (a *attendanceUseCase) ListByClass(
	ctx context.Context,
	filter attendanceDomain.ClassFilter,
) ([]*attendanceDomain.Attendance, error) {
	return a.attendanceRepo.ListByClass(ctx, filter)
}

func (a *attendanceUseCase) StudentStats(ctx context.Context, email string) (*attendanceDomain.Stats, error) {
	return a.attendanceRepo.StatsByStudent(ctx, email)
}

func (a *attendanceUseCase) ListRecords(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error) {
	return a.recordRepo.List(ctx)
}

func (a *attendanceUseCase) ListStudentRecords(
	ctx context.Context,
	email string,
) ([]*attendanceDomain.AttendanceRecord, error) {
	return a.recordRepo.ListByEmail(ctx, email)
}

// RecordStats summarizes every attendance document.
func (a *attendanceUseCase) RecordStats(ctx context.Context) (*attendanceDomain.Stats, error) {
	records, err := a.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return attendanceDomain.StatsFromRecords(records), nil
}
