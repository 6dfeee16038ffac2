package service

import (
	"encoding/base64"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	customValidation "github.com/aru-nika-08/attendance-tracking-system/internal/validation"
)

// DecodeImage decodes a base64 image, optionally wrapped in a data URL.
func DecodeImage(encoded string) ([]byte, error) {
	image, err := base64.StdEncoding.DecodeString(customValidation.StripDataURL(encoded))
	if err != nil || len(image) == 0 {
		return nil, attendanceDomain.ErrInvalidImage
	}
	return image, nil
}
