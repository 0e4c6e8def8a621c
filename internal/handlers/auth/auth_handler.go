// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gastro-insights/internal/domain/admin"
	"gastro-insights/internal/middleware"
	xerrors "gastro-insights/internal/pkg/errors"
	"gastro-insights/internal/pkg/response"
	authService "gastro-insights/internal/service/auth"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type AuthHandler struct {
	authService  *authService.AuthService
	cookieSecure bool
	devMode      bool
	logger       *zap.Logger
}

func NewAuthHandler(svc *authService.AuthService, cookieSecure, devMode bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  svc,
		cookieSecure: cookieSecure,
		devMode:      devMode,
		logger:       logger,
	}
}

// ========== Cookies ==========

func (h *AuthHandler) setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, accessToken, int(h.authService.AccessTTL().Seconds()), "/", "", h.cookieSecure, true)
	c.SetCookie(refreshCookie, refreshToken, int(h.authService.RefreshTTL().Seconds()), "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, "", -1, "/", "", h.cookieSecure, true)
	c.SetCookie(refreshCookie, "", -1, "/", "", h.cookieSecure, true)
}

// ========== Error mapping ==========

// respondError maps domain errors to HTTP statuses. Unexpected errors
// are logged in full but only echoed to the client in development.
func (h *AuthHandler) respondError(c *gin.Context, err error) {
	var attemptsErr *xerrors.OTPAttemptsError

	switch {
	case errors.Is(err, xerrors.ErrInvalidCredentials),
		errors.Is(err, xerrors.ErrInvalidTempToken),
		errors.Is(err, xerrors.ErrInvalidRefreshToken),
		errors.Is(err, xerrors.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, "authentication failed", err)
	case errors.As(err, &attemptsErr),
		errors.Is(err, xerrors.ErrOTPNotFound),
		errors.Is(err, xerrors.ErrOTPExpired),
		errors.Is(err, xerrors.ErrOTPAttemptsExceeded):
		response.Error(c, http.StatusBadRequest, "OTP verification failed", err)
	case errors.Is(err, xerrors.ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "username conflict", err)
	case errors.Is(err, xerrors.ErrSelfDelete):
		response.Error(c, http.StatusForbidden, "operation not allowed", err)
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "admin not found")
	case errors.Is(err, xerrors.ErrNotification):
		response.Error(c, http.StatusBadGateway, "OTP delivery failed", err)
	default:
		h.logger.Error("unexpected auth error", zap.Error(err))
		if h.devMode {
			response.Error(c, http.StatusInternalServerError, "internal server error", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

// ========== Login flow ==========

// Login authenticates by username/password. Depending on whether the
// admin has a Telegram channel, it either sets session cookies or
// returns a temp token for the 2FA step.
func (h *AuthHandler) Login(c *gin.Context) {
	var req admin.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if resp.Requires2FA {
		response.Success(c, http.StatusOK, resp.Message, resp)
		return
	}

	h.setTokenCookies(c, resp.AccessToken, resp.RefreshToken)
	response.Success(c, http.StatusOK, "login successful", resp)
}

// Verify2FA completes a pending login with the OTP code.
func (h *AuthHandler) Verify2FA(c *gin.Context) {
	var req admin.Verify2FARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	pair, err := h.authService.Verify2FA(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	response.Success(c, http.StatusOK, "login successful", pair)
}

// Refresh mints a new access token from the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil || refreshToken == "" {
		response.Unauthorized(c, "refresh token missing")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	response.Success(c, http.StatusOK, "token refreshed", pair)
}

// Logout clears the session cookies. Tokens are stateless, so there is
// nothing to revoke server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearTokenCookies(c)
	response.Success(c, http.StatusOK, "logout successful", nil)
}

// ========== Session ==========

// Me returns the authenticated admin's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	adminID := middleware.MustGetAdminID(c)

	info, err := h.authService.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "admin profile", info)
}

// CheckSession reports whether the caller holds a valid access token.
// It always answers 200: an anonymous caller is a valid outcome, not
// an error.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	unauthenticated := admin.SessionInfo{Authenticated: false}

	token, err := c.Cookie(accessCookie)
	if err != nil || token == "" {
		response.Success(c, http.StatusOK, "no active session", unauthenticated)
		return
	}

	claims, err := h.authService.ValidateAccess(token)
	if err != nil {
		response.Success(c, http.StatusOK, "no active session", unauthenticated)
		return
	}

	adminID, err := claims.AdminID()
	if err != nil {
		response.Success(c, http.StatusOK, "no active session", unauthenticated)
		return
	}

	info, err := h.authService.GetAdmin(c.Request.Context(), adminID)
	if err != nil {
		response.Success(c, http.StatusOK, "no active session", unauthenticated)
		return
	}

	response.Success(c, http.StatusOK, "active session", admin.SessionInfo{
		Authenticated: true,
		Admin:         info,
	})
}

// ========== Admin management ==========

// CreateAdmin registers a new admin account.
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	var req admin.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	info, err := h.authService.CreateAdmin(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "admin created", info)
}

// ListAdmins returns all admin accounts.
func (h *AuthHandler) ListAdmins(c *gin.Context) {
	infos, err := h.authService.ListAdmins(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "admin list", infos)
}

// DeleteAdmin removes an admin account by id.
func (h *AuthHandler) DeleteAdmin(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid admin id", err)
		return
	}

	callerID := middleware.MustGetAdminID(c)

	if err := h.authService.DeleteAdmin(c.Request.Context(), callerID, targetID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "admin deleted", nil)
}
