// internal/pkg/jwt/claims.go
package jwt

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "type" claim.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
	KindTemp    = "temp"
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	Kind     string `json:"type"`              // access, refresh, temp
	Purpose  string `json:"purpose,omitempty"` // set on temp tokens only, e.g. "2fa"
	jwt.RegisteredClaims
}

// AdminID parses the subject claim back into the numeric admin id.
func (c *Claims) AdminID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// IsKind checks whether the token carries the expected kind tag.
func (c *Claims) IsKind(kind string) bool {
	return c.Kind == kind
}
