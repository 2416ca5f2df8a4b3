package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/retail-pos-backend/internal/router"
)

// newEcho returns an Echo instance wired the way main wires it, so
// handlers can call c.Validate in tests.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = router.NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
