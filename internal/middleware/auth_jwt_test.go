package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func signToken(t *testing.T, secret string, sub string, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestAuthJWTAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, "42", "customer", time.Hour)

	rec, c := doRequest(t, AuthJWT(cfg), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(CtxUserIDKey))
	assert.Equal(t, "customer", c.Get(CtxUserRoleKey))
}

func TestAuthJWTRejectsMissingHeader(t *testing.T) {
	rec, _ := doRequest(t, AuthJWT(testConfig()), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWTRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, "other-secret", "42", "customer", time.Hour)

	rec, _ := doRequest(t, AuthJWT(cfg), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWTRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, "42", "customer", -time.Minute)

	rec, _ := doRequest(t, AuthJWT(cfg), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWTRejectsMalformedHeader(t *testing.T) {
	rec, _ := doRequest(t, AuthJWT(testConfig()), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthJWTAllowsGuest(t *testing.T) {
	rec, c := doRequest(t, OptionalAuthJWT(testConfig()), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, c.Get(CtxUserIDKey))
}

func TestOptionalAuthJWTStillRejectsBadToken(t *testing.T) {
	rec, _ := doRequest(t, OptionalAuthJWT(testConfig()), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthJWTBindsCustomer(t *testing.T) {
	cfg := testConfig()
	token := signToken(t, cfg.JWTSecret, "7", "customer", time.Hour)

	rec, c := doRequest(t, OptionalAuthJWT(cfg), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), c.Get(CtxUserIDKey))
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(CtxUserRoleKey, role)
		}
		handler := AdminRoleGuard()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("admin").Code)
	assert.Equal(t, http.StatusForbidden, run("customer").Code)
	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
}
