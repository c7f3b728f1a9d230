package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-management/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, model.RoleArtistManager, 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	claims, err := ParseAccessToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, model.RoleArtistManager, claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", 1, model.RoleArtist, 15)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("secret", 1, model.RoleArtist, -1)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tok, err := NewRefreshToken("refresh-secret", 7, 30)
	require.NoError(t, err)

	uid, err := ParseRefreshToken("refresh-secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
}

// A refresh token must never pass as an access token: it carries no
// role, so role enforcement cannot be bypassed by cookie swapping.
func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	tok, err := NewRefreshToken("secret", 7, 30)
	require.NoError(t, err)

	_, err = ParseAccessToken("secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Separate secrets keep the two token families apart even when claims
// would otherwise be compatible.
func TestTokenFamiliesUseSeparateSecrets(t *testing.T) {
	access, err := NewAccessToken("access-secret", 9, model.RoleArtist, 15)
	require.NoError(t, err)

	_, err = ParseRefreshToken("refresh-secret", access.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
