// Package dto provides data transfer objects for the scan, face verification
// and attendance endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/aru-nika-08/attendance-tracking-system/internal/httputil"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

const maxEmailLength = 320

// ValidateQRRequest presents a scanned QR token on behalf of a student.
type ValidateQRRequest struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Validate checks if the validate request is valid.
func (r *ValidateQRRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&r.Email, validation.Required, customValidation.Email, validation.Length(1, maxEmailLength)),
	)
}

// FaceVerifyRequest carries a face image for an open scan session.
type FaceVerifyRequest struct {
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	Image     string `json:"image"`
}

// Validate checks if the face verification request is valid.
func (r *FaceVerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.SessionID),
		validation.Field(&r.Email, validation.Required, customValidation.Email, validation.Length(1, maxEmailLength)),
		validation.Field(&r.Image, validation.Required, customValidation.Base64Image),
	)
}

// AttendanceRequest authorizes attendance for an open scan session.
// Confidence is omitted when no face check was made.
type AttendanceRequest struct {
	Email      string   `json:"email"`
	SessionID  string   `json:"sessionId"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Validate checks if the attendance request is valid.
func (r *AttendanceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email, validation.Length(1, maxEmailLength)),
		validation.Field(&r.SessionID, validation.Required, customValidation.SessionID),
		validation.Field(&r.Confidence, validation.Min(0.0), validation.Max(1.0)),
	)
}

// MarkQuery is the query string of the direct mark endpoint.
type MarkQuery struct {
	StudentEmail string `form:"studentEmail"`
	Token        string `form:"token"`
}

// Validate checks if the mark query is valid.
func (q *MarkQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.StudentEmail, validation.Required, customValidation.Email),
		validation.Field(&q.Token, validation.Required, customValidation.NotBlank),
	)
}

// ClassQuery selects the attendance of one class period.
type ClassQuery struct {
	ClassName string `form:"className"`
	Date      string `form:"date"`
	Period    string `form:"period"`
}

// Validate checks if the class query is valid.
func (q *ClassQuery) Validate() error {
	return validation.ValidateStruct(q,
		validation.Field(&q.ClassName, validation.Required, customValidation.NotBlank),
		validation.Field(&q.Date, validation.Required, validation.Date(httputil.DateLayout)),
		validation.Field(&q.Period, validation.Required, customValidation.NotBlank),
	)
}
