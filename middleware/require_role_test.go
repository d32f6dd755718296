package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContextWithClaims(t *testing.T, claims *JwtCustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if claims != nil {
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
	}

	return c, rec
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	c, rec := newContextWithClaims(t, &JwtCustomClaims{UserID: "abc", Role: "admin"})

	handler := RequireRole("admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRedirectsWrongRoleToRoot(t *testing.T) {
	c, rec := newContextWithClaims(t, &JwtCustomClaims{UserID: "abc", Role: "marketer"})

	handler := RequireRole("admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, RootPath, rec.Header().Get(echo.HeaderLocation))
}

func TestRequireRoleRedirectsMissingSessionToLogin(t *testing.T) {
	c, rec := newContextWithClaims(t, nil)

	handler := RequireRole("admin")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get(echo.HeaderLocation))
}
