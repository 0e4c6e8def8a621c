// internal/middleware/auth_middleware.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gastro-insights/internal/pkg/response"
	authService "gastro-insights/internal/service/auth"
)

const (
	ctxAdminID  = "admin_id"
	ctxUsername = "username"
	ctxJTI      = "jti"

	accessCookie = "access_token"
)

// AuthMiddleware reads the access-token cookie, validates it, and puts
// the admin identity on the request context. Requests without a valid
// token are rejected before reaching the handler.
func AuthMiddleware(svc *authService.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(accessCookie)
		if err != nil || token == "" {
			response.Unauthorized(c, "authentication required")
			return
		}

		claims, err := svc.ValidateAccess(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired access token")
			return
		}

		adminID, err := claims.AdminID()
		if err != nil {
			logger.Warn("access token with malformed subject", zap.String("subject", claims.Subject))
			response.Unauthorized(c, "invalid or expired access token")
			return
		}

		c.Set(ctxAdminID, adminID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxJTI, claims.ID)

		c.Next()
	}
}
