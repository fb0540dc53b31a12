package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"almox/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, tokenType string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":  int64(7),
		"username": "alice",
		"type":     tokenType,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestGetClaims_NilWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	// must not panic on routes that never ran JWTAuth
	assert.Nil(t, middleware.GetClaims(c))
}

func TestJWTAuth_SetsTypedClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got *middleware.JWTClaims
	r.GET("/p", middleware.JWTAuth(testSecret), func(c *gin.Context) {
		got = middleware.GetClaims(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "access", time.Minute))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "alice", got.Username)
}

func TestJWTAuth_RejectsRefreshAndMissingTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", middleware.JWTAuth(testSecret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// refresh tokens are not a session, even when validly signed
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "refresh", time.Minute))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
