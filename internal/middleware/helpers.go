// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// GetAdminID gets the authenticated admin's id from context
func GetAdminID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxAdminID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetAdminID gets the admin id from context or panics
func MustGetAdminID(c *gin.Context) int64 {
	id, exists := GetAdminID(c)
	if !exists {
		panic("admin_id not found in context")
	}
	return id
}

// GetUsername gets the authenticated admin's username from context
func GetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUsername)
	if !exists {
		return "", false
	}
	username, ok := v.(string)
	return username, ok
}

// GetJTI gets the access token's unique id from context
func GetJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxJTI)
	if !exists {
		return "", false
	}
	jti, ok := v.(string)
	return jti, ok
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get(ctxAdminID)
	return exists
}
