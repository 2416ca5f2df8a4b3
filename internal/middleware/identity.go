package middleware

// identity.go exposes the identity stored in the Echo context by
// JWTAuth.  These helpers never fail: when no token was presented or a
// claim is missing they return the empty string, and callers treat
// absence as "unauthenticated".

import "github.com/labstack/echo/v4"

// CurrentUserID returns the authenticated user's id, or "".
func CurrentUserID(c echo.Context) string { return ctxString(c, ctxUserID) }

// CurrentUserEmail returns the authenticated user's email, or "".
func CurrentUserEmail(c echo.Context) string { return ctxString(c, ctxEmail) }

// CurrentUserRole returns the authenticated user's role, or "".
func CurrentUserRole(c echo.Context) string { return ctxString(c, ctxRole) }

func ctxString(c echo.Context, key string) string {
	if v, ok := c.Get(key).(string); ok {
		return v
	}
	return ""
}
