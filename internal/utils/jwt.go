package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"     // secure random number generation
	"encoding/base64" // base64 encoding for refresh tokens
	"time"            // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived and sent in the Authorization header
// when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long-lived token used to obtain new access
// tokens.  The Raw value is returned to the client and stored verbatim
// on the user row; a user holds at most one active refresh token, so
// issuing a new one revokes the previous session.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// TokenIssuer signs access tokens and mints refresh tokens.  It holds
// the process-wide signing material, which is read-only after startup.
type TokenIssuer struct {
	Secret         string // symmetric HS512 signing key
	Issuer         string // iss claim
	Audience       string // aud claim
	AccessTTLMin   int    // access token lifetime in minutes
	RefreshTTLDays int    // refresh token lifetime in days
}

// NewAccessToken builds and signs an HS512 JWT for a user.  The claims
// carry the user id (sub), email and role so the middleware can hand an
// identity to handlers without a database round trip.
func (ti TokenIssuer) NewAccessToken(userID, email, role string) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ti.AccessTTLMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"iss":   ti.Issuer,
		"aud":   ti.Audience,
		"exp":   exp.Unix(),
		"iat":   now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString([]byte(ti.Secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken returns a cryptographically secure random token and
// its expiration time: 32 random bytes, base64-encoded.
func (ti TokenIssuer) NewRefreshToken() (RefreshToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: base64.StdEncoding.EncodeToString(buf),
		Exp: time.Now().UTC().Add(time.Duration(ti.RefreshTTLDays) * 24 * time.Hour),
	}, nil
}
