package dto

import (
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// GenerateQRResponse carries the token to render and its expiry in epoch milliseconds.
type GenerateQRResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// MapIssueOutputToResponse converts an issued token to an API response.
func MapIssueOutputToResponse(output *qrDomain.IssueTokenOutput) GenerateQRResponse {
	return GenerateQRResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAtMillis,
	}
}
