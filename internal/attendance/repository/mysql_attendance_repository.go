package repository

import (
	"context"
	"database/sql"
	"strings"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/database"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

// MySQLAttendanceRepository implements attendance row persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAttendanceRepository struct {
	db *sql.DB
}

// Create inserts an attendance row.
func (m *MySQLAttendanceRepository) Create(ctx context.Context, attendance *attendanceDomain.Attendance) error {
	querier := database.GetTx(ctx, m.db)

	id, err := attendance.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal attendance id")
	}

	query := `INSERT INTO attendance (` + attendanceColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		attendance.StudentEmail,
		attendance.StaffID,
		attendance.StaffName,
		attendance.ClassName,
		attendance.CourseID,
		attendance.SessionDate,
		attendance.Period,
		string(attendance.Status),
		attendance.Confidence,
		attendance.MarkedBy,
		attendance.SessionID,
		attendance.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create attendance")
	}

	return nil
}

// ListByStudent retrieves a student's attendance, newest first, with pagination.
func (m *MySQLAttendanceRepository) ListByStudent(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance
			  WHERE student_email = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	return m.list(ctx, query, strings.ToLower(email), limit, offset)
}

// List retrieves all attendance, newest first, with pagination.
func (m *MySQLAttendanceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	return m.list(ctx, query, limit, offset)
}

// ListByClass retrieves the attendance of one class period in marking order.
func (m *MySQLAttendanceRepository) ListByClass(
	ctx context.Context,
	filter attendanceDomain.ClassFilter,
) ([]*attendanceDomain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance
			  WHERE class_name = ? AND session_date = ? AND period = ?
			  ORDER BY created_at ASC`

	return m.list(ctx, query, filter.ClassName, filter.SessionDate, filter.Period)
}

// StatsByStudent counts a student's attendance by status.
func (m *MySQLAttendanceRepository) StatsByStudent(
	ctx context.Context,
	email string,
) (*attendanceDomain.Stats, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT status, COUNT(*) FROM attendance WHERE student_email = ? GROUP BY status`

	rows, err := querier.QueryContext(ctx, query, strings.ToLower(email))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count attendance")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanStats(rows)
}

func (m *MySQLAttendanceRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*attendanceDomain.Attendance, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list attendance")
	}
	defer func() {
		_ = rows.Close()
	}()

	attendances := make([]*attendanceDomain.Attendance, 0)
	for rows.Next() {
		var attendance attendanceDomain.Attendance
		var id []byte
		var status string

		err := rows.Scan(
			&id,
			&attendance.StudentEmail,
			&attendance.StaffID,
			&attendance.StaffName,
			&attendance.ClassName,
			&attendance.CourseID,
			&attendance.SessionDate,
			&attendance.Period,
			&status,
			&attendance.Confidence,
			&attendance.MarkedBy,
			&attendance.SessionID,
			&attendance.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan attendance")
		}

		if err := attendance.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal attendance id")
		}

		attendance.Status = attendanceDomain.Status(status)
		attendances = append(attendances, &attendance)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate attendance")
	}

	return attendances, nil
}

// NewMySQLAttendanceRepository creates a new MySQL attendance repository.
func NewMySQLAttendanceRepository(db *sql.DB) *MySQLAttendanceRepository {
	return &MySQLAttendanceRepository{db: db}
}
