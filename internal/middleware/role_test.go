package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuebook/hall-booking/internal/utils"
)

func performWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("OWNER", "ADMIN")

	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "OWNER").Code)
	assert.Equal(t, http.StatusOK, performWithRole(t, mw, "ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, "CUSTOMER").Code)
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, nil).Code)
	// non-string role claim is rejected, not coerced
	assert.Equal(t, http.StatusForbidden, performWithRole(t, mw, 7).Code)
}

func TestJWTAuthAcceptsIssuedToken(t *testing.T) {
	const secret = "mw-secret"
	tok, err := utils.NewAccessToken(secret, 9, "CUSTOMER", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotRole interface{}
	h := JWTAuth(secret)(func(c echo.Context) error {
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CUSTOMER", gotRole)
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	e := echo.New()

	run := func(authHeader string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		h := JWTAuth("right-secret")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, run(""))
	assert.Equal(t, http.StatusUnauthorized, run("Bearer garbage"))

	tok, err := utils.NewAccessToken("wrong-secret", 9, "CUSTOMER", 5)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, run("Bearer "+tok.Token))
}
