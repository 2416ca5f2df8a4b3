package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys under which the authenticated identity is stored.
// Handlers read them through the helpers in identity.go.
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the subject id, email and role claims into the
// request context.  Tokens must be signed with HS512 using the given
// secret and carry the expected issuer and audience; anything else is
// rejected with 401.
func JWTAuth(secret, issuer, audience string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// The key function doubles as the signing method check:
			// a token signed with anything but HMAC never reaches
			// signature verification.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			}, jwt.WithIssuer(issuer), jwt.WithAudience(audience), jwt.WithExpirationRequired())
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Store identity claims for handlers and downstream
			// middleware.  Missing claims simply stay absent; consumers
			// treat absence as unauthenticated.
			if v, ok := claims["sub"].(string); ok {
				c.Set(ctxUserID, v)
			}
			if v, ok := claims["email"].(string); ok {
				c.Set(ctxEmail, v)
			}
			if v, ok := claims["role"].(string); ok {
				c.Set(ctxRole, v)
			}
			return next(c)
		}
	}
}
