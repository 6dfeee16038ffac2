package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase/mocks"
)

func TestAttendanceUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ListByStudent", func(t *testing.T) {
		attendanceRepo := &mocks.MockAttendanceRepository{}
		recordRepo := &mocks.MockAttendanceRecordRepository{}
		expected := []*attendanceDomain.Attendance{{StudentEmail: "a@x.edu"}}

		attendanceRepo.On("ListByStudent", ctx, "a@x.edu", 0, 50).Return(expected, nil).Once()

		useCase := attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo)
		result, err := useCase.ListByStudent(ctx, "a@x.edu", 0, 50)
		require.NoError(t, err)
		assert.Equal(t, expected, result)
		attendanceRepo.AssertExpectations(t)
	})

	t.Run("Success_ListByClass", func(t *testing.T) {
		attendanceRepo := &mocks.MockAttendanceRepository{}
		recordRepo := &mocks.MockAttendanceRecordRepository{}
		filter := attendanceDomain.ClassFilter{ClassName: "CSE-A", SessionDate: "2026-03-02", Period: "3"}

		attendanceRepo.On("ListByClass", ctx, filter).Return([]*attendanceDomain.Attendance{}, nil).Once()

		useCase := attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo)
		result, err := useCase.ListByClass(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("Success_StudentStats", func(t *testing.T) {
		attendanceRepo := &mocks.MockAttendanceRepository{}
		recordRepo := &mocks.MockAttendanceRecordRepository{}
		stats := &attendanceDomain.Stats{Total: 2, Present: 2, AttendanceRate: 100}

		attendanceRepo.On("StatsByStudent", ctx, "a@x.edu").Return(stats, nil).Once()

		useCase := attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo)
		result, err := useCase.StudentStats(ctx, "a@x.edu")
		require.NoError(t, err)
		assert.Equal(t, stats, result)
	})

	t.Run("Success_RecordStats", func(t *testing.T) {
		attendanceRepo := &mocks.MockAttendanceRepository{}
		recordRepo := &mocks.MockAttendanceRecordRepository{}

		recordRepo.On("List", ctx).Return([]*attendanceDomain.AttendanceRecord{
			{Status: attendanceDomain.StatusPresent},
			{Status: attendanceDomain.StatusLate},
			{Status: attendanceDomain.StatusAbsent},
			{Status: attendanceDomain.StatusPresent},
		}, nil).Once()

		useCase := attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo)
		stats, err := useCase.RecordStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.Total)
		assert.Equal(t, int64(2), stats.Present)
		assert.InDelta(t, 50.0, stats.AttendanceRate, 0.0001)
	})

	t.Run("Error_RecordStats", func(t *testing.T) {
		attendanceRepo := &mocks.MockAttendanceRepository{}
		recordRepo := &mocks.MockAttendanceRecordRepository{}
		listErr := errors.New("collection closed")

		recordRepo.On("List", ctx).Return(nil, listErr).Once()

		useCase := attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo)
		_, err := useCase.RecordStats(ctx)
		assert.ErrorIs(t, err, listErr)
	})

	t.Run("Success_ListStudentRecords", func(t *testing.T) {
		attendanceRepo := &mocks.MockAttendanceRepository{}
		recordRepo := &mocks.MockAttendanceRecordRepository{}
		records := []*attendanceDomain.AttendanceRecord{{Email: "a@x.edu"}}

		recordRepo.On("ListByEmail", ctx, "a@x.edu").Return(records, nil).Once()

		useCase := attendanceUseCase.NewAttendanceUseCase(attendanceRepo, recordRepo)
		result, err := useCase.ListStudentRecords(ctx, "a@x.edu")
		require.NoError(t, err)
		assert.Equal(t, records, result)
	})
}
