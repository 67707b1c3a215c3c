package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadPolicy_Check(t *testing.T) {
	policy := UploadPolicy{
		MaxFileSize:      100,
		AllowedMIMETypes: []string{"image/jpeg", "application/pdf"},
	}

	t.Run("within limits", func(t *testing.T) {
		require.NoError(t, policy.Check(100, "image/jpeg"))
	})

	t.Run("too large", func(t *testing.T) {
		err := policy.Check(101, "image/jpeg")
		require.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("disallowed type", func(t *testing.T) {
		err := policy.Check(10, "video/mp4")
		require.ErrorIs(t, err, ErrMIMENotAllowed)
	})

	t.Run("unknown type passes", func(t *testing.T) {
		require.NoError(t, policy.Check(10, ""))
	})
}

func TestUploadPolicy_Defaults(t *testing.T) {
	var policy UploadPolicy

	// Zero limit falls back to the default cap
	require.NoError(t, policy.Check(DefaultMaxFileSize, "video/mp4"))
	assert.ErrorIs(t, policy.Check(DefaultMaxFileSize+1, "video/mp4"), ErrFileTooLarge)

	// Empty allow-list is permissive
	require.NoError(t, policy.Check(10, "application/x-dosexec"))
}
