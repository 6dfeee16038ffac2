package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
)

func TestDecodeImage(t *testing.T) {
	t.Run("Success_PlainBase64", func(t *testing.T) {
		image, err := DecodeImage("aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), image)
	})

	t.Run("Success_DataURL", func(t *testing.T) {
		image, err := DecodeImage("data:image/jpeg;base64,aGVsbG8=")
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), image)
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		_, err := DecodeImage("not base64!")
		assert.ErrorIs(t, err, attendanceDomain.ErrInvalidImage)
	})

	t.Run("Error_Empty", func(t *testing.T) {
		_, err := DecodeImage("")
		assert.ErrorIs(t, err, attendanceDomain.ErrInvalidImage)
	})
}
