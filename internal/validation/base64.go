package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"
)

// StripDataURL removes a "data:image/...;base64," prefix when present.
func StripDataURL(s string) string {
	if strings.HasPrefix(s, "data:") {
		if idx := strings.Index(s, ","); idx >= 0 {
			return s[idx+1:]
		}
	}
	return s
}

// Base64Image validates a base64 image, optionally wrapped in a data URL.
var Base64Image = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := base64.StdEncoding.DecodeString(StripDataURL(s)); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded image data")
	}
	return nil
})
