// internal/handlers/auth/auth_handler_test.go
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gastro-insights/internal/domain/admin"
	xerrors "gastro-insights/internal/pkg/errors"
	"gastro-insights/internal/pkg/hash"
	"gastro-insights/internal/pkg/jwt"
	"gastro-insights/internal/pkg/otp"
	authService "gastro-insights/internal/service/auth"
)

const (
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
)

type stubAdminRepo struct {
	nextID int64
	byID   map[int64]*admin.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{byID: make(map[int64]*admin.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, a *admin.Admin) (*admin.Admin, error) {
	r.nextID++
	created := *a
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.byID[created.ID] = &created
	return &created, nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]*admin.Admin, error) {
	out := make([]*admin.Admin, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*admin.Admin, error) {
	for _, a := range r.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id int64) (*admin.Admin, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return a, nil
}

func (r *stubAdminRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

type stubSender struct {
	lastCode string
}

func (s *stubSender) SendOTP(_ context.Context, _, code string, _ time.Duration) bool {
	s.lastCode = code
	return true
}

func newTestRouter(t *testing.T) (*gin.Engine, *authService.AuthService, *stubSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager, err := jwt.NewManager(jwt.Config{
		Secret:     "test-secret",
		Issuer:     "test",
		AccessTTL:  testAccessTTL,
		RefreshTTL: testRefreshTTL,
		TempTTL:    5 * time.Minute,
	})
	require.NoError(t, err)

	sender := &stubSender{}
	svc := authService.NewAuthService(
		newStubAdminRepo(),
		otp.NewMemoryStore(5*time.Minute),
		sender,
		manager,
		hash.NewHasher(4), // low cost keeps the tests fast
		5*time.Minute,
		zap.NewNop(),
	)

	h := NewAuthHandler(svc, false, true, zap.NewNop())

	r := gin.New()
	api := r.Group("/api/v1/auth")
	api.POST("/login", h.Login)
	api.POST("/2fa-verify", h.Verify2FA)
	api.GET("/check-session", h.CheckSession)
	return r, svc, sender
}

func createAdmin(t *testing.T, svc *authService.AuthService, username, password string, telegramID *string) {
	t.Helper()
	_, err := svc.CreateAdmin(context.Background(), &admin.CreateAdminRequest{
		Username:   username,
		Password:   password,
		TelegramID: telegramID,
	})
	require.NoError(t, err)
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func cookieByName(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func assertSessionCookies(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	access := cookieByName(t, w, "access_token")
	assert.Equal(t, int(testAccessTTL.Seconds()), access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.NotEmpty(t, access.Value)

	refresh := cookieByName(t, w, "refresh_token")
	assert.Equal(t, int(testRefreshTTL.Seconds()), refresh.MaxAge)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, "/", refresh.Path)
	assert.NotEmpty(t, refresh.Value)
}

func TestLogin_CookieMaxAgeMatchesTokenTTL(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	createAdmin(t, svc, "alice", "password123", nil)

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assertSessionCookies(t, w)
}

func TestVerify2FA_CookieMaxAgeMatchesTokenTTL(t *testing.T) {
	r, svc, sender := newTestRouter(t)
	chatID := "12345"
	createAdmin(t, svc, "bob", "password123", &chatID)

	loginW := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "bob",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, loginW.Code)
	// The 2FA branch must not set session cookies yet.
	assert.Empty(t, loginW.Result().Cookies())

	var loginBody struct {
		Data struct {
			TempToken string `json:"temp_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginBody))
	require.NotEmpty(t, loginBody.Data.TempToken)

	w := postJSON(t, r, "/api/v1/auth/2fa-verify", gin.H{
		"temp_token": loginBody.Data.TempToken,
		"otp_code":   sender.lastCode,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assertSessionCookies(t, w)
}

func TestCheckSession_AnonymousReturns200(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/check-session", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Authenticated bool        `json:"authenticated"`
			Admin         interface{} `json:"admin"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.False(t, body.Data.Authenticated)
	assert.Nil(t, body.Data.Admin)
}

func TestCheckSession_WithValidCookie(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	createAdmin(t, svc, "alice", "password123", nil)

	loginW := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"username": "alice",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, loginW.Code)
	access := cookieByName(t, loginW, "access_token")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/check-session", nil)
	req.AddCookie(access)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Authenticated bool `json:"authenticated"`
			Admin         *struct {
				Username string `json:"username"`
			} `json:"admin"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Authenticated)
	require.NotNil(t, body.Data.Admin)
	assert.Equal(t, "alice", body.Data.Admin.Username)
}
