package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/avverma/fitrag/internal/pkg/jwt"
)

func jwtTestEngine(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuth(secret))
	engine.GET("/me", func(c *gin.Context) {
		userID, _ := c.Get(ContextUserIDKey)
		c.String(http.StatusOK, "%v", userID)
	})
	return engine
}

func TestJWTAuthValidToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := jwt.GenerateToken("user-1", "a@b.c", secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	jwtTestEngine(secret).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", rec.Body.String())
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	jwtTestEngine([]byte("s")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "missing authorization")
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	token, err := jwt.GenerateToken("user-1", "", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	jwtTestEngine([]byte("test-secret")).ServeHTTP(rec, req)

	require.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := jwt.GenerateToken("user-1", "", secret, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	jwtTestEngine(secret).ServeHTTP(rec, req)

	require.Contains(t, rec.Body.String(), "invalid token")
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	jwtTestEngine([]byte("s")).ServeHTTP(rec, req)

	require.Contains(t, rec.Body.String(), "invalid authorization")
}
