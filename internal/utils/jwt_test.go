package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() TokenIssuer {
	return TokenIssuer{
		Secret:         "test-secret",
		Issuer:         "pos-api",
		Audience:       "pos-web",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
	}
}

func TestNewAccessTokenClaims(t *testing.T) {
	ti := testIssuer()
	at, err := ti.NewAccessToken("u-1", "admin@easystore.local", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		require.IsType(t, &jwt.SigningMethodHMAC{}, tok.Method)
		return []byte(ti.Secret), nil
	}, jwt.WithIssuer(ti.Issuer), jwt.WithAudience(ti.Audience))
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "u-1", claims["sub"])
	assert.Equal(t, "admin@easystore.local", claims["email"])
	assert.Equal(t, "Admin", claims["role"])

	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	ti := testIssuer()
	at, err := ti.NewAccessToken("u-1", "a@b.c", "Cashier")
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("not-the-secret"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	ti := testIssuer()
	a, err := ti.NewRefreshToken()
	require.NoError(t, err)
	b, err := ti.NewRefreshToken()
	require.NoError(t, err)

	// 32 random bytes base64-encode to 44 characters.
	assert.Len(t, a.Raw, 44)
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), a.Exp, 5*time.Second)
}
