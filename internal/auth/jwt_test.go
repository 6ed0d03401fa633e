package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/acadsuite/campus-api/internal/models"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(TokenManagerConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "campus-api-test",
	})
}

func TestIssuePairRoundTrip(t *testing.T) {
	manager := newTestTokenManager()
	user := models.User{ID: 42, Username: "jdoe", Role: models.RoleFaculty}

	pair, err := manager.IssuePair(user)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := manager.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, uint(42), access.UserID)
	require.Equal(t, "jdoe", access.Username)
	require.Equal(t, models.RoleFaculty, access.Role)
	require.NotEmpty(t, access.ID, "token needs a jti for revocation")

	refresh, err := manager.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, uint(42), refresh.UserID)
	require.NotEqual(t, access.ID, refresh.ID, "access and refresh tokens carry distinct jtis")
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	manager := newTestTokenManager()
	pair, err := manager.IssuePair(models.User{ID: 1, Username: "jdoe", Role: models.RoleStudent})
	require.NoError(t, err)

	// Different secrets mean a swapped token fails signature checks before
	// the type claim is even consulted.
	_, err = manager.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
	_, err = manager.VerifyRefresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	manager := newTestTokenManager()
	pair, err := manager.IssuePair(models.User{ID: 7, Username: "jdoe", Role: models.RoleStudent})
	require.NoError(t, err)

	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = manager.VerifyAccess(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager(TokenManagerConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     -time.Minute,
		RefreshTTL:    time.Hour,
	})
	// A non-positive TTL falls back to the default, so force expiry by
	// signing directly.
	expired, err := manager.sign(models.User{ID: 9}, TokenTypeAccess, time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour), "access-secret")
	require.NoError(t, err)

	_, err = manager.VerifyAccess(expired)
	require.ErrorIs(t, err, ErrInvalidToken)
}
