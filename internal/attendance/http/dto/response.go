package dto

import (
	"time"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// ValidateQRResponse reports a redeemed token and the scan session it opened.
type ValidateQRResponse struct {
	Valid     bool   `json:"valid"`
	SessionID string `json:"sessionId"`
}

// SessionResponse reports the owner of a scan session.
type SessionResponse struct {
	Email string `json:"email"`
	Valid bool   `json:"valid"`
}

// FaceStatusResponse reports whether a scan session is still waiting for a face check.
type FaceStatusResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
}

// FaceVerifyResponse is the outcome of a face check.
type FaceVerifyResponse struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// AuthorizationResponse describes a persisted attendance write.
type AuthorizationResponse struct {
	ID         string                  `json:"id"`
	Email      string                  `json:"email"`
	SessionID  string                  `json:"sessionId,omitempty"`
	Status     attendanceDomain.Status `json:"status"`
	Confidence float64                 `json:"confidence"`
	MarkedBy   string                  `json:"markedBy"`
	StaffID    string                  `json:"staffId"`
	ClassName  string                  `json:"className"`
	CourseID   string                  `json:"courseId"`
	Period     string                  `json:"period"`
}

// AttendanceResponse represents a relational attendance row.
type AttendanceResponse struct {
	ID           string                  `json:"id"`
	StudentEmail string                  `json:"studentEmail"`
	StaffID      string                  `json:"staffId"`
	StaffName    string                  `json:"staffName"`
	ClassName    string                  `json:"className"`
	CourseID     string                  `json:"courseId"`
	SessionDate  string                  `json:"sessionDate"`
	Period       string                  `json:"period"`
	Status       attendanceDomain.Status `json:"status"`
	Confidence   float64                 `json:"confidence"`
	MarkedBy     string                  `json:"markedBy"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// AttendanceListResponse wraps a page of attendance rows.
type AttendanceListResponse struct {
	Data []AttendanceResponse `json:"data"`
}

// RecordListResponse wraps attendance documents.
type RecordListResponse struct {
	Data []*attendanceDomain.AttendanceRecord `json:"data"`
}

// MapSessionToResponse converts a scan session to its status response.
func MapSessionToResponse(session *qrDomain.ScanSession) SessionResponse {
	return SessionResponse{Email: session.Subject, Valid: true}
}

// MapAuthorizationToResponse converts an authorization to an API response.
func MapAuthorizationToResponse(authorization *attendanceUseCase.Authorization) AuthorizationResponse {
	response := AuthorizationResponse{
		ID:         authorization.AttendanceID,
		Email:      authorization.Subject,
		SessionID:  authorization.SessionID,
		Status:     authorization.Status,
		Confidence: authorization.Confidence,
		MarkedBy:   authorization.MarkedBy,
	}
	if authorization.Payload != nil {
		response.StaffID = authorization.Payload.Metadata.StaffID
		response.ClassName = authorization.Payload.Metadata.ClassName
		response.CourseID = authorization.Payload.Metadata.CourseID
		response.Period = authorization.Payload.Metadata.Period
	}
	return response
}

// MapAttendanceToResponse converts a relational row to an API response.
func MapAttendanceToResponse(attendance *attendanceDomain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           attendance.ID.String(),
		StudentEmail: attendance.StudentEmail,
		StaffID:      attendance.StaffID,
		StaffName:    attendance.StaffName,
		ClassName:    attendance.ClassName,
		CourseID:     attendance.CourseID,
		SessionDate:  attendance.SessionDate,
		Period:       attendance.Period,
		Status:       attendance.Status,
		Confidence:   attendance.Confidence,
		MarkedBy:     attendance.MarkedBy,
		CreatedAt:    attendance.CreatedAt,
	}
}

// MapAttendancesToListResponse converts rows to a list response.
func MapAttendancesToListResponse(attendances []*attendanceDomain.Attendance) AttendanceListResponse {
	data := make([]AttendanceResponse, 0, len(attendances))
	for _, attendance := range attendances {
		data = append(data, MapAttendanceToResponse(attendance))
	}
	return AttendanceListResponse{Data: data}
}

// MapRecordsToListResponse wraps documents in a list response.
func MapRecordsToListResponse(records []*attendanceDomain.AttendanceRecord) RecordListResponse {
	if records == nil {
		records = []*attendanceDomain.AttendanceRecord{}
	}
	return RecordListResponse{Data: records}
}
