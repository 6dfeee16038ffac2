package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestRandomSource_Nonce(t *testing.T) {
	source := NewRandomSource()

	nonce, err := source.Nonce()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9]{8}$`), nonce)

	t.Run("Error_ReaderFailure", func(t *testing.T) {
		_, err := (&cryptoRandom{reader: failingReader{}}).Nonce()
		assert.ErrorContains(t, err, "failed to generate nonce")
	})
}

func TestRandomSource_SessionID(t *testing.T) {
	source := NewRandomSource()

	t.Run("Success_Format", func(t *testing.T) {
		id, err := source.SessionID()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), id)
	})

	t.Run("Success_UniqueAcrossTrials", func(t *testing.T) {
		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			id, err := source.SessionID()
			require.NoError(t, err)
			_, dup := seen[id]
			require.False(t, dup)
			seen[id] = struct{}{}
		}
	})

	t.Run("Error_ReaderFailure", func(t *testing.T) {
		_, err := (&cryptoRandom{reader: failingReader{}}).SessionID()
		assert.ErrorContains(t, err, "failed to generate session id")
	})
}
