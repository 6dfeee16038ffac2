package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
)

type tokenIssuer struct {
	codec  qrService.TokenCodec
	random qrService.RandomSource
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewTokenIssuer creates a TokenIssuer signing with secret. The TTL only sets
// the advertised expiry; verifiers enforce their own configured TTL.
func NewTokenIssuer(
	codec qrService.TokenCodec,
	random qrService.RandomSource,
	secret []byte,
	ttl time.Duration,
	logger *slog.Logger,
) TokenIssuer {
	return &tokenIssuer{
		codec:  codec,
		random: random,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Issue stamps the current time and a fresh nonce onto a copy of metadata and
// seals the resulting payload.
func (i *tokenIssuer) Issue(
	ctx context.Context,
	metadata *qrDomain.SessionMetadata,
) (*qrDomain.IssueTokenOutput, error) {
	if metadata == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session metadata is required")
	}

	nonce, err := i.random.Nonce()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", qrDomain.ErrIssuance, err)
	}

	payload := &qrDomain.SessionPayload{
		IssuedAtMillis: i.now().UnixMilli(),
		Nonce:          nonce,
		Metadata:       *metadata,
	}

	token, err := i.codec.Seal(i.secret, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", qrDomain.ErrIssuance, err)
	}

	i.logger.DebugContext(ctx, "qr token issued",
		slog.String("staff_id", metadata.StaffID),
		slog.String("course_id", metadata.CourseID),
		slog.String("period", metadata.Period),
	)

	return &qrDomain.IssueTokenOutput{
		Token:           token,
		IssuedAtMillis:  payload.IssuedAtMillis,
		ExpiresAtMillis: payload.IssuedAtMillis + i.ttl.Milliseconds(),
	}, nil
}
