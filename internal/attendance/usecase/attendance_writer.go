package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/database"
)

// dualWriter writes the relational row and the document of an event. The
// document is written while the row's transaction is open, so a document
// failure rolls the row back.
type dualWriter struct {
	txManager      database.TxManager
	attendanceRepo AttendanceRepository
	recordRepo     AttendanceRecordRepository
}

// NewAttendanceWriter creates an AttendanceWriter persisting to both stores.
func NewAttendanceWriter(
	txManager database.TxManager,
	attendanceRepo AttendanceRepository,
	recordRepo AttendanceRecordRepository,
) AttendanceWriter {
	return &dualWriter{
		txManager:      txManager,
		attendanceRepo: attendanceRepo,
		recordRepo:     recordRepo,
	}
}

// Persist writes event to both stores. Any failure is wrapped in ErrWriteFailed.
func (w *dualWriter) Persist(ctx context.Context, event *attendanceDomain.AttendanceEvent) error {
	row := event.ToAttendance()
	record := event.ToRecord()

	err := w.txManager.WithTx(ctx, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return w.attendanceRepo.Create(gctx, row)
		})
		g.Go(func() error {
			return w.recordRepo.Create(gctx, record)
		})
		return g.Wait()
	})
	if err != nil {
		return fmt.Errorf("%w: %w", attendanceDomain.ErrWriteFailed, err)
	}

	return nil
}
