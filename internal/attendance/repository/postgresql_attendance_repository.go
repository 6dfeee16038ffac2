// Package repository provides relational and document persistence for attendance.
package repository

import (
	"context"
	"database/sql"
	"strings"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	"github.com/aru-nika-08/attendance-tracking-system/internal/database"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

const attendanceColumns = `id, student_email, staff_id, staff_name, class_name, course_id, session_date,
		  period, status, confidence, marked_by, session_id, created_at`

// PostgreSQLAttendanceRepository implements attendance row persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAttendanceRepository struct {
	db *sql.DB
}

// Create inserts an attendance row.
func (p *PostgreSQLAttendanceRepository) Create(ctx context.Context, attendance *attendanceDomain.Attendance) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO attendance (` + attendanceColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		attendance.ID,
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
func (p *PostgreSQLAttendanceRepository) ListByStudent(
	ctx context.Context,
	email string,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance
			  WHERE student_email = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	return p.list(ctx, query, strings.ToLower(email), limit, offset)
}

// List retrieves all attendance, newest first, with pagination.
func (p *PostgreSQLAttendanceRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*attendanceDomain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`

	return p.list(ctx, query, limit, offset)
}

// ListByClass retrieves the attendance of one class period in marking order.
func (p *PostgreSQLAttendanceRepository) ListByClass(
	ctx context.Context,
	filter attendanceDomain.ClassFilter,
) ([]*attendanceDomain.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
			  FROM attendance
			  WHERE class_name = $1 AND session_date = $2 AND period = $3
			  ORDER BY created_at ASC`

	return p.list(ctx, query, filter.ClassName, filter.SessionDate, filter.Period)
}

// StatsByStudent counts a student's attendance by status.
func (p *PostgreSQLAttendanceRepository) StatsByStudent(
	ctx context.Context,
	email string,
) (*attendanceDomain.Stats, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT status, COUNT(*) FROM attendance WHERE student_email = $1 GROUP BY status`

	rows, err := querier.QueryContext(ctx, query, strings.ToLower(email))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count attendance")
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanStats(rows)
}

func (p *PostgreSQLAttendanceRepository) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*attendanceDomain.Attendance, error) {
	querier := database.GetTx(ctx, p.db)

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
		var status string

		err := rows.Scan(
			&attendance.ID,
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

		attendance.Status = attendanceDomain.Status(status)
		attendances = append(attendances, &attendance)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate attendance")
	}

	return attendances, nil
}

// scanStats folds "status, count" rows into Stats.
func scanStats(rows *sql.Rows) (*attendanceDomain.Stats, error) {
	stats := &attendanceDomain.Stats{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan attendance count")
		}
		stats.Add(attendanceDomain.Status(status), count)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate attendance counts")
	}

	return stats, nil
}

// NewPostgreSQLAttendanceRepository creates a new PostgreSQL attendance repository.
func NewPostgreSQLAttendanceRepository(db *sql.DB) *PostgreSQLAttendanceRepository {
	return &PostgreSQLAttendanceRepository{db: db}
}
