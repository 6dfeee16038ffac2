package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrMocks "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase/mocks"
)

func TestRunInspectToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	payload := &qrDomain.SessionPayload{
		IssuedAtMillis: 1700000000000,
		Nonce:          "k3j9x2",
		Metadata: qrDomain.SessionMetadata{
			StaffID:    "staff-1",
			StaffName:  "Dr. Rao",
			CourseID:   "CS101",
			CourseName: "Algorithms",
			Location:   "Hall A",
		},
	}

	t.Run("valid-text", func(t *testing.T) {
		mockVerifier := &qrMocks.MockTokenVerifier{}
		mockVerifier.On("Verify", ctx, "good").Return(payload, nil)

		var out bytes.Buffer
		err := RunInspectToken(ctx, mockVerifier, logger, &out, "good", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Token valid")
		require.Contains(t, out.String(), "Course: Algorithms (CS101)")
		require.Contains(t, out.String(), "Nonce: k3j9x2")
		mockVerifier.AssertExpectations(t)
	})

	t.Run("valid-json", func(t *testing.T) {
		mockVerifier := &qrMocks.MockTokenVerifier{}
		mockVerifier.On("Verify", ctx, "good").Return(payload, nil)

		var out bytes.Buffer
		err := RunInspectToken(ctx, mockVerifier, logger, &out, "good", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"valid": true`)
		require.Contains(t, out.String(), `"courseId": "CS101"`)
		mockVerifier.AssertExpectations(t)
	})

	t.Run("expired-text", func(t *testing.T) {
		mockVerifier := &qrMocks.MockTokenVerifier{}
		mockVerifier.On("Verify", ctx, "old").
			Return(nil, fmt.Errorf("verify: %w", qrDomain.ErrTokenExpired))

		var out bytes.Buffer
		err := RunInspectToken(ctx, mockVerifier, logger, &out, "old", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "token rejected: expired")
		require.Contains(t, out.String(), "Token rejected: expired")
		mockVerifier.AssertExpectations(t)
	})

	t.Run("bad-signature-json", func(t *testing.T) {
		mockVerifier := &qrMocks.MockTokenVerifier{}
		mockVerifier.On("Verify", ctx, "forged").Return(nil, qrDomain.ErrTokenBadSignature)

		var out bytes.Buffer
		err := RunInspectToken(ctx, mockVerifier, logger, &out, "forged", "json")

		require.Error(t, err)
		require.Contains(t, out.String(), `"valid": false`)
		require.Contains(t, out.String(), `"reason": "bad_signature"`)
		mockVerifier.AssertExpectations(t)
	})

	t.Run("unexpected-error", func(t *testing.T) {
		mockVerifier := &qrMocks.MockTokenVerifier{}
		mockVerifier.On("Verify", ctx, "x").Return(nil, errors.New("boom"))

		var out bytes.Buffer
		err := RunInspectToken(ctx, mockVerifier, logger, &out, "x", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to verify token")
		require.Empty(t, out.String())
	})
}
