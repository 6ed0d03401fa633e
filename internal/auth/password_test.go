package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	require.NoError(t, VerifyPassword(hash, "correct horse battery"))
	require.ErrorIs(t, VerifyPassword(hash, "wrong guess"), ErrPasswordMismatch)
}

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, ValidatePasswordStrength("S3curely-long", "jdoe", "jane@example.com"))

	require.Error(t, ValidatePasswordStrength("short1", "jdoe"), "below minimum length")
	require.Error(t, ValidatePasswordStrength("8675309123456", "jdoe"), "entirely numeric")
	require.Error(t, ValidatePasswordStrength("Password123", "jdoe"), "common password")
	require.Error(t, ValidatePasswordStrength("jdoe-rocks-2020", "jdoe"), "contains username")
	require.Error(t, ValidatePasswordStrength("jane1234", "jdoe", "jane@example.com"), "matches email local part")
}
