// Package domain defines attendance rows, attendance documents and the events
// that produce them once a scan is authorized.
package domain

import (
	"time"

	"github.com/google/uuid"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// Status is the attendance outcome derived from face confidence.
type Status string

// Attendance statuses.
const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// StatusForConfidence grades a face confidence: present at or above
// presentThreshold, late at or above acceptThreshold, otherwise absent.
func StatusForConfidence(confidence, acceptThreshold, presentThreshold float64) Status {
	switch {
	case confidence >= presentThreshold:
		return StatusPresent
	case confidence >= acceptThreshold:
		return StatusLate
	default:
		return StatusAbsent
	}
}

// Attendance is the relational attendance row.
type Attendance struct {
	ID           uuid.UUID
	StudentEmail string
	StaffID      string
	StaffName    string
	ClassName    string
	CourseID     string
	SessionDate  string
	Period       string
	Status       Status
	Confidence   float64
	MarkedBy     string
	SessionID    string
	CreatedAt    time.Time
}

// Present reports whether the student attended, on time or late.
func (a *Attendance) Present() bool {
	return a.Status == StatusPresent || a.Status == StatusLate
}

// AttendanceRecord is the attendance document kept in the document store.
type AttendanceRecord struct {
	ID         string    `docstore:"id" json:"id"`
	Email      string    `docstore:"email" json:"email"`
	MarkedBy   string    `docstore:"markedBy" json:"markedBy"`
	ClassName  string    `docstore:"className" json:"className"`
	CourseID   string    `docstore:"courseId" json:"courseId"`
	Period     string    `docstore:"period" json:"period"`
	Status     Status    `docstore:"status" json:"status"`
	Timestamp  time.Time `docstore:"timestamp" json:"timestamp"`
	SessionID  string    `docstore:"sessionId" json:"sessionId"`
	Confidence float64   `docstore:"confidence" json:"confidence"`
}

// AttendanceEvent is one authorized attendance write, persisted as both a row
// and a document.
type AttendanceEvent struct {
	ID         uuid.UUID
	Subject    string
	SessionID  string
	Payload    *qrDomain.SessionPayload
	Confidence float64
	Status     Status
	MarkedBy   string
	OccurredAt time.Time
}

// ToAttendance converts the event to its relational row.
func (e *AttendanceEvent) ToAttendance() *Attendance {
	metadata := e.metadata()
	return &Attendance{
		ID:           e.ID,
		StudentEmail: e.Subject,
		StaffID:      metadata.StaffID,
		StaffName:    metadata.StaffName,
		ClassName:    metadata.ClassName,
		CourseID:     metadata.CourseID,
		SessionDate:  metadata.SessionDate,
		Period:       metadata.Period,
		Status:       e.Status,
		Confidence:   e.Confidence,
		MarkedBy:     e.MarkedBy,
		SessionID:    e.SessionID,
		CreatedAt:    e.OccurredAt,
	}
}

// ToRecord converts the event to its document.
func (e *AttendanceEvent) ToRecord() *AttendanceRecord {
	metadata := e.metadata()
	return &AttendanceRecord{
		ID:         e.ID.String(),
		Email:      e.Subject,
		MarkedBy:   e.MarkedBy,
		ClassName:  metadata.ClassName,
		CourseID:   metadata.CourseID,
		Period:     metadata.Period,
		Status:     e.Status,
		Timestamp:  e.OccurredAt,
		SessionID:  e.SessionID,
		Confidence: e.Confidence,
	}
}

func (e *AttendanceEvent) metadata() qrDomain.SessionMetadata {
	if e.Payload == nil {
		return qrDomain.SessionMetadata{}
	}
	return e.Payload.Metadata
}

// ClassFilter selects the attendance of one class period.
type ClassFilter struct {
	ClassName   string
	SessionDate string
	Period      string
}

// Stats summarizes attendance by status. AttendanceRate is the percentage of
// present rows and does not count late arrivals.
type Stats struct {
	Total          int64   `json:"total"`
	Present        int64   `json:"present"`
	Late           int64   `json:"late"`
	Absent         int64   `json:"absent"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// Add counts n rows with status.
func (s *Stats) Add(status Status, n int64) {
	switch status {
	case StatusPresent:
		s.Present += n
	case StatusLate:
		s.Late += n
	case StatusAbsent:
		s.Absent += n
	}
	s.Total += n
	s.updateRate()
}

func (s *Stats) updateRate() {
	if s.Total == 0 {
		s.AttendanceRate = 0
		return
	}
	s.AttendanceRate = float64(s.Present) / float64(s.Total) * 100
}

// StatsFromRecords summarizes attendance documents.
func StatsFromRecords(records []*AttendanceRecord) *Stats {
	stats := &Stats{}
	for _, record := range records {
		stats.Add(record.Status, 1)
	}
	return stats
}
