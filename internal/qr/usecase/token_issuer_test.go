package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
)

const testTTL = 30 * time.Second

var testSecret = bytes.Repeat([]byte{0x5a}, 32)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingRandom struct{}

func (failingRandom) Nonce() (string, error)     { return "", errors.New("entropy exhausted") }
func (failingRandom) SessionID() (string, error) { return "", errors.New("entropy exhausted") }

func testMetadata() *qrDomain.SessionMetadata {
	return &qrDomain.SessionMetadata{
		StaffID:        "S1",
		StaffName:      "Dr. Rao",
		SessionDate:    "2026-03-02",
		Period:         "3",
		StartTime:      "10:00",
		EndTime:        "10:50",
		CourseID:       "C1",
		CourseName:     "Distributed Systems",
		Location:       "Room 101",
		AttendanceType: "lecture",
		ClassName:      "CSE-A",
	}
}

func newTestIssuer(now time.Time) *tokenIssuer {
	signer := qrService.NewSigner()
	issuer := NewTokenIssuer(
		qrService.NewTokenCodec(signer),
		qrService.NewRandomSource(),
		testSecret,
		testTTL,
		discardLogger(),
	).(*tokenIssuer)
	issuer.now = func() time.Time { return now }
	return issuer
}

func TestTokenIssuer_Issue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("Success_StampsTimeAndExpiry", func(t *testing.T) {
		output, err := newTestIssuer(now).Issue(ctx, testMetadata())
		require.NoError(t, err)

		assert.NotEmpty(t, output.Token)
		assert.Equal(t, now.UnixMilli(), output.IssuedAtMillis)
		assert.Equal(t, now.Add(testTTL).UnixMilli(), output.ExpiresAtMillis)
	})

	t.Run("Success_NonceVariesIdenticalMetadata", func(t *testing.T) {
		issuer := newTestIssuer(now)

		first, err := issuer.Issue(ctx, testMetadata())
		require.NoError(t, err)
		second, err := issuer.Issue(ctx, testMetadata())
		require.NoError(t, err)

		assert.NotEqual(t, first.Token, second.Token)
	})

	t.Run("Success_MetadataCopied", func(t *testing.T) {
		issuer := newTestIssuer(now)
		metadata := testMetadata()

		output, err := issuer.Issue(ctx, metadata)
		require.NoError(t, err)
		metadata.StaffID = "changed"

		canonical, _, err := issuer.codec.Open(output.Token)
		require.NoError(t, err)
		payload, err := issuer.codec.Decode(canonical)
		require.NoError(t, err)
		assert.Equal(t, "S1", payload.Metadata.StaffID)
	})

	t.Run("Error_NilMetadata", func(t *testing.T) {
		_, err := newTestIssuer(now).Issue(ctx, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_RandomFailure", func(t *testing.T) {
		issuer := newTestIssuer(now)
		issuer.random = failingRandom{}

		_, err := issuer.Issue(ctx, testMetadata())
		assert.ErrorIs(t, err, qrDomain.ErrIssuance)
		assert.ErrorContains(t, err, "entropy exhausted")
	})
}
