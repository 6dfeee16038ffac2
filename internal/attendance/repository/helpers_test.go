package repository

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
)

var testColumns = []string{
	"id", "student_email", "staff_id", "staff_name", "class_name", "course_id", "session_date",
	"period", "status", "confidence", "marked_by", "session_id", "created_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestAttendance(email string, createdAt time.Time) *attendanceDomain.Attendance {
	return &attendanceDomain.Attendance{
		ID:           uuid.Must(uuid.NewV7()),
		StudentEmail: email,
		StaffID:      "S1",
		StaffName:    "Dr. Rao",
		ClassName:    "CSE-A",
		CourseID:     "C1",
		SessionDate:  "2026-03-02",
		Period:       "3",
		Status:       attendanceDomain.StatusPresent,
		Confidence:   0.9,
		MarkedBy:     email,
		SessionID:    "0123456789abcdef0123456789abcdef",
		CreatedAt:    createdAt,
	}
}

func attendanceRowValues(a *attendanceDomain.Attendance, id any) []driver.Value {
	return []driver.Value{
		id, a.StudentEmail, a.StaffID, a.StaffName, a.ClassName, a.CourseID, a.SessionDate,
		a.Period, string(a.Status), a.Confidence, a.MarkedBy, a.SessionID, a.CreatedAt,
	}
}
