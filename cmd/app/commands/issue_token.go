package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
)

// RunIssueToken mints a QR token for metadata and prints it in text or JSON.
func RunIssueToken(
	ctx context.Context,
	tokenIssuer qrUseCase.TokenIssuer,
	logger *slog.Logger,
	out io.Writer,
	metadata *qrDomain.SessionMetadata,
	format string,
) error {
	issued, err := tokenIssuer.Issue(ctx, metadata)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued",
		slog.String("course_id", metadata.CourseID),
		slog.Int64("expires_at", issued.ExpiresAtMillis),
	)

	if format == "json" {
		return writeJSON(out, map[string]any{
			"token":      issued.Token,
			"issued_at":  issued.IssuedAtMillis,
			"expires_at": issued.ExpiresAtMillis,
		})
	}

	_, _ = fmt.Fprintf(out, "Token: %s\n", issued.Token)
	_, _ = fmt.Fprintf(out, "Issued At: %s\n", time.UnixMilli(issued.IssuedAtMillis).UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(out, "Expires At: %s\n", time.UnixMilli(issued.ExpiresAtMillis).UTC().Format(time.RFC3339))
	return nil
}
