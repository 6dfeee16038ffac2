// Package dto provides data transfer objects for the QR token endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

const maxFieldLength = 255

// GenerateQRRequest describes the class session a staff member opens.
type GenerateQRRequest struct {
	StaffID        string `json:"staffId"`
	StaffName      string `json:"staffName"`
	ClassName      string `json:"className"`
	SessionDate    string `json:"sessionDate"`
	Period         string `json:"period"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	CourseID       string `json:"courseId"`
	CourseName     string `json:"courseName"`
	Location       string `json:"location"`
	AttendanceType string `json:"attendanceType"`
}

// Validate checks if the generate request is valid.
func (r *GenerateQRRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StaffID, validation.Required, customValidation.NotBlank, validation.Length(1, maxFieldLength)),
		validation.Field(&r.StaffName, validation.Length(0, maxFieldLength)),
		validation.Field(&r.ClassName, validation.Length(0, maxFieldLength)),
		validation.Field(&r.SessionDate, validation.Date(httputil.DateLayout)),
		validation.Field(&r.Period, validation.Required, customValidation.NotBlank, validation.Length(1, maxFieldLength)),
		validation.Field(&r.StartTime, customValidation.ClockTime),
		validation.Field(&r.EndTime, customValidation.ClockTime),
		validation.Field(&r.CourseID, validation.Required, customValidation.NotBlank, validation.Length(1, maxFieldLength)),
		validation.Field(&r.CourseName, validation.Length(0, maxFieldLength)),
		validation.Field(&r.Location, validation.Length(0, maxFieldLength)),
		validation.Field(&r.AttendanceType, validation.Length(0, maxFieldLength)),
	)
}

// ToMetadata converts the request to session metadata.
func (r *GenerateQRRequest) ToMetadata() *qrDomain.SessionMetadata {
	return &qrDomain.SessionMetadata{
		StaffID:        r.StaffID,
		StaffName:      r.StaffName,
		SessionDate:    r.SessionDate,
		Period:         r.Period,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		CourseID:       r.CourseID,
		CourseName:     r.CourseName,
		Location:       r.Location,
		AttendanceType: r.AttendanceType,
		ClassName:      r.ClassName,
	}
}
