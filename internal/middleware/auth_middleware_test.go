// internal/middleware/auth_middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastro-insights/internal/pkg/hash"
	"gastro-insights/internal/pkg/jwt"
	authService "gastro-insights/internal/service/auth"
)

func testRouter(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := jwt.NewManager(jwt.Config{
		Secret:     "test-secret",
		Issuer:     "test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		TempTTL:    time.Minute,
	})
	require.NoError(t, err)

	// Token validation touches only the JWT manager, so the repository,
	// OTP store and sender can stay nil here.
	svc := authService.NewAuthService(nil, nil, nil, manager, hash.NewHasher(4), time.Minute, zap.NewNop())

	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc, zap.NewNop()), func(c *gin.Context) {
		adminID := MustGetAdminID(c)
		username, _ := GetUsername(c)
		c.JSON(http.StatusOK, gin.H{"admin_id": adminID, "username": username})
	})
	return r, manager
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "garbage"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	r, manager := testRouter(t)

	token, err := manager.Generator.GenerateRefresh(7, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, manager := testRouter(t)

	token, err := manager.Generator.GenerateAccess(7, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin_id": 7, "username": "alice"}`, w.Body.String())
}
