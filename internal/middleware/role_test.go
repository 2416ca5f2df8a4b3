package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRole(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(ctxRole, role)
	}

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRoleAllows(t *testing.T) {
	rec := runRole(t, "Admin", "Admin")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleAllowsAnyListed(t *testing.T) {
	rec := runRole(t, "Cashier", "Admin", "Cashier")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbidsOther(t *testing.T) {
	rec := runRole(t, "Customer", "Admin")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleForbidsMissingIdentity(t *testing.T) {
	rec := runRole(t, "", "Admin")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
