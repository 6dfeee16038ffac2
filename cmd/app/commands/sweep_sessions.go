package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
)

// RunSweepSessions runs one eviction pass over the scan session store. It is
// only meaningful for shared stores such as redis.
func RunSweepSessions(
	ctx context.Context,
	sweeper qrUseCase.SessionSweeper,
	logger *slog.Logger,
	out io.Writer,
	format string,
) error {
	removed, err := sweeper.SweepOnce(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep scan sessions: %w", err)
	}

	logger.Info("sweep completed", slog.Int("count", removed))

	if format == "json" {
		return writeJSON(out, map[string]any{"count": removed})
	}

	_, _ = fmt.Fprintf(out, "Successfully removed %d expired scan session(s)\n", removed)
	return nil
}
