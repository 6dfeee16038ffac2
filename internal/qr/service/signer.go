package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// signingKeyInfo is the HKDF info string; bump the version when the token
// format or MAC algorithm changes.
const signingKeyInfo = "qr-session-token-v1"

const signingKeySize = 32

type hmacSigner struct{}

// NewSigner creates an HMAC-SHA256 signer. The configured secret is never used
// directly: a 32-byte signing key is derived from it with HKDF-SHA256.
func NewSigner() Signer {
	return &hmacSigner{}
}

func (s *hmacSigner) deriveSigningKey(secret []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(signingKeyInfo))

	signingKey := make([]byte, signingKeySize)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// Sign returns the 32-byte HMAC-SHA256 of message.
func (s *hmacSigner) Sign(secret, message []byte) ([]byte, error) {
	signingKey, err := s.deriveSigningKey(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(signingKey)

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(message)

	return mac.Sum(nil), nil
}

// Verify recomputes the MAC and compares it with hmac.Equal.
func (s *hmacSigner) Verify(secret, message, signature []byte) bool {
	if len(signature) != sha256.Size {
		return false
	}

	expected, err := s.Sign(secret, message)
	if err != nil {
		return false
	}

	return hmac.Equal(expected, signature)
}

// zero overwrites key material once it is no longer needed.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
