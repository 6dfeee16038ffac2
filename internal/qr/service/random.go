package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

const (
	nonceChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	nonceLength = 8

	sessionIDBytes = 16
)

type cryptoRandom struct {
	reader io.Reader
}

// NewRandomSource creates a RandomSource backed by crypto/rand.
func NewRandomSource() RandomSource {
	return &cryptoRandom{reader: rand.Reader}
}

// Nonce returns 8 characters drawn uniformly from [A-Za-z0-9].
func (r *cryptoRandom) Nonce() (string, error) {
	nonce := make([]byte, nonceLength)
	charsLen := big.NewInt(int64(len(nonceChars)))

	for i := range nonce {
		n, err := rand.Int(r.reader, charsLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate nonce: %w", err)
		}
		nonce[i] = nonceChars[n.Int64()]
	}

	return string(nonce), nil
}

// SessionID returns 32 lowercase hex characters (128 random bits).
func (r *cryptoRandom) SessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
