// Package service provides the QR token primitives: payload signing, the
// canonical token codec, random identifiers and signing-key loading.
package service

import (
	"context"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// Signer computes and checks message authentication codes over token payloads.
type Signer interface {
	// Sign returns the MAC of message under a key derived from secret.
	Sign(secret, message []byte) ([]byte, error)

	// Verify reports whether signature is the MAC of message. It never panics
	// on attacker-controlled input and compares in constant time.
	Verify(secret, message, signature []byte) bool
}

// TokenCodec converts payloads to their canonical bytes and assembles the
// opaque token string.
type TokenCodec interface {
	// Encode returns the canonical byte form of the payload.
	Encode(payload *qrDomain.SessionPayload) ([]byte, error)

	// Decode parses canonical bytes strictly. Any deviation is ErrTokenMalformed.
	Decode(canonical []byte) (*qrDomain.SessionPayload, error)

	// Seal encodes and signs the payload and returns the token string.
	Seal(secret []byte, payload *qrDomain.SessionPayload) (string, error)

	// Open splits a token into its canonical payload bytes and raw signature
	// without interpreting the payload.
	Open(token string) (canonical, signature []byte, err error)
}

// RandomSource generates the random values embedded in tokens and sessions.
type RandomSource interface {
	// Nonce returns a short random string that varies otherwise identical payloads.
	Nonce() (string, error)

	// SessionID returns a 128-bit random identifier, hex encoded.
	SessionID() (string, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap the signing secret.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper opens a keeper for gcpkms://, awskms://, azurekeyvault://,
	// hashivault:// or base64key:// URIs.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
