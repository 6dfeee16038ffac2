// Package domain defines the QR session token model: the signed payload, the
// issuance result and the scan session created when a token is redeemed.
package domain

import "time"

// SessionMetadata is the issuer-supplied description of a class session.
// The fields are opaque to the token core and are carried verbatim.
type SessionMetadata struct {
	StaffID        string `json:"staffId"`
	StaffName      string `json:"staffName"`
	SessionDate    string `json:"sessionDate"`
	Period         string `json:"period"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	CourseID       string `json:"courseId"`
	CourseName     string `json:"courseName"`
	Location       string `json:"location"`
	AttendanceType string `json:"attendanceType"`
	ClassName      string `json:"className"`
}

// SessionPayload is the signed content of a QR token. It is never mutated after
// the issuer builds it.
type SessionPayload struct {
	IssuedAtMillis int64           `json:"issuedAtMillis"`
	Nonce          string          `json:"nonce"`
	Metadata       SessionMetadata `json:"metadata"`
}

// IssuedAt returns the mint time as a time.Time.
func (p *SessionPayload) IssuedAt() time.Time {
	return time.UnixMilli(p.IssuedAtMillis).UTC()
}

// Age returns how old the payload is at now. The result is negative when the
// payload claims a mint time in the future.
func (p *SessionPayload) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-p.IssuedAtMillis) * time.Millisecond
}

// IssueTokenOutput is the result of minting a token.
type IssueTokenOutput struct {
	Token           string
	IssuedAtMillis  int64
	ExpiresAtMillis int64
}

// ScanSession binds a verified payload to the identity that presented it.
type ScanSession struct {
	ID        string          `json:"id"`
	Subject   string          `json:"subject"`
	Payload   *SessionPayload `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExpiredAt reports whether the session outlived maxAge measured from the
// issuing payload's mint time.
func (s *ScanSession) ExpiredAt(now time.Time, maxAge time.Duration) bool {
	if s.Payload == nil {
		return true
	}
	return s.Payload.Age(now) > maxAge
}
