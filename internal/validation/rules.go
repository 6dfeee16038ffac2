// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

var (
	emailRegex     = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	sessionIDRegex = regexp.MustCompile(`^[0-9a-f]{32}$`)
	hhmmRegex      = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// SessionID validates the 32 character lowercase hex form of scan session ids.
var SessionID = validation.NewStringRuleWithError(
	func(s string) bool {
		return sessionIDRegex.MatchString(s)
	},
	validation.NewError("validation_session_id", "must be a valid session id"),
)

// ClockTime validates HH:MM wall clock times such as period start and end.
var ClockTime = validation.NewStringRuleWithError(
	func(s string) bool {
		return hhmmRegex.MatchString(s)
	},
	validation.NewError("validation_clock_time", "must use the HH:MM format"),
)
