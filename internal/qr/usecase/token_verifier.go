package usecase

import (
	"context"
	"log/slog"
	"time"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrService "github.com/aru-nika-08/attendance-tracking-system/internal/qr/service"
)

type tokenVerifier struct {
	codec  qrService.TokenCodec
	signer qrService.Signer
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewTokenVerifier creates a TokenVerifier accepting tokens at most ttl old.
func NewTokenVerifier(
	codec qrService.TokenCodec,
	signer qrService.Signer,
	secret []byte,
	ttl time.Duration,
	logger *slog.Logger,
) TokenVerifier {
	return &tokenVerifier{
		codec:  codec,
		signer: signer,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Verify fails closed at the first failing step:
//
//  1. outer decode and split on the last separator (malformed)
//  2. constant-time MAC check over the raw payload bytes (bad_signature)
//  3. payload decode (malformed)
//  4. age outside [0, ttl] (expired)
//
// No payload field is read before the MAC check passes.
func (v *tokenVerifier) Verify(ctx context.Context, token string) (*qrDomain.SessionPayload, error) {
	canonical, signature, err := v.codec.Open(token)
	if err != nil {
		return nil, v.reject(ctx, err)
	}

	if !v.signer.Verify(v.secret, canonical, signature) {
		return nil, v.reject(ctx, qrDomain.ErrTokenBadSignature)
	}

	payload, err := v.codec.Decode(canonical)
	if err != nil {
		return nil, v.reject(ctx, err)
	}

	age := payload.Age(v.now())
	if age > v.ttl || age < 0 {
		v.logger.DebugContext(ctx, "qr token rejected",
			slog.String("reason", qrDomain.ReasonExpired.String()),
			slog.Duration("age", age),
		)
		return nil, qrDomain.ErrTokenExpired
	}

	return payload, nil
}

func (v *tokenVerifier) reject(ctx context.Context, err error) error {
	v.logger.DebugContext(ctx, "qr token rejected",
		slog.String("reason", qrDomain.ReasonOf(err).String()),
	)
	return err
}
