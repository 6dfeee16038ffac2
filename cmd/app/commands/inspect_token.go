package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
)

// RunInspectToken verifies token and prints its payload or the rejection
// reason. A rejected token is reported as an error after printing.
func RunInspectToken(
	ctx context.Context,
	tokenVerifier qrUseCase.TokenVerifier,
	logger *slog.Logger,
	out io.Writer,
	token string,
	format string,
) error {
	payload, err := tokenVerifier.Verify(ctx, token)
	if err != nil {
		reason := qrDomain.ReasonOf(err)
		if reason == "" {
			return fmt.Errorf("failed to verify token: %w", err)
		}

		logger.Info("token rejected", slog.String("reason", string(reason)))

		if format == "json" {
			if jsonErr := writeJSON(out, map[string]any{"valid": false, "reason": reason}); jsonErr != nil {
				return jsonErr
			}
		} else {
			_, _ = fmt.Fprintf(out, "Token rejected: %s\n", reason)
		}
		return fmt.Errorf("token rejected: %s", reason)
	}

	if format == "json" {
		return writeJSON(out, map[string]any{"valid": true, "payload": payload})
	}

	_, _ = fmt.Fprintln(out, "Token valid")
	_, _ = fmt.Fprintf(out, "Issued At: %s\n", payload.IssuedAt().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(out, "Nonce: %s\n", payload.Nonce)
	_, _ = fmt.Fprintf(out, "Staff: %s (%s)\n", payload.Metadata.StaffName, payload.Metadata.StaffID)
	_, _ = fmt.Fprintf(out, "Course: %s (%s)\n", payload.Metadata.CourseName, payload.Metadata.CourseID)
	_, _ = fmt.Fprintf(out, "Session: %s period %s, %s-%s\n",
		payload.Metadata.SessionDate,
		payload.Metadata.Period,
		payload.Metadata.StartTime,
		payload.Metadata.EndTime,
	)
	_, _ = fmt.Fprintf(out, "Location: %s\n", payload.Metadata.Location)
	return nil
}
