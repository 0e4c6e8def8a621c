// internal/pkg/jwt/generator.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type Generator struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	tempTTL    time.Duration
}

func NewGenerator(secret []byte, issuer string, accessTTL, refreshTTL, tempTTL time.Duration) *Generator {
	return &Generator{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		tempTTL:    tempTTL,
	}
}

// generate creates a signed token of the given kind with the given TTL.
func (g *Generator) generate(adminID int64, username, kind, purpose string, ttl time.Duration) (string, error) {
	if len(g.secret) == 0 {
		return "", fmt.Errorf("jwt generator has empty secret")
	}

	now := time.Now()
	claims := &Claims{
		Username: username,
		Kind:     kind,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   fmt.Sprintf("%d", adminID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(g.secret)
}

// GenerateAccess creates a short-lived token authorizing API calls.
func (g *Generator) GenerateAccess(adminID int64, username string) (string, error) {
	return g.generate(adminID, username, KindAccess, "", g.accessTTL)
}

// GenerateRefresh creates a long-lived token used only to mint new access tokens.
func (g *Generator) GenerateRefresh(adminID int64, username string) (string, error) {
	return g.generate(adminID, username, KindRefresh, "", g.refreshTTL)
}

// GenerateTemp creates a single-purpose token bridging login and 2FA verification.
func (g *Generator) GenerateTemp(adminID int64, username, purpose string) (string, error) {
	return g.generate(adminID, username, KindTemp, purpose, g.tempTTL)
}

// AccessTTL exposes the configured access-token lifetime for cookie max-age.
func (g *Generator) AccessTTL() time.Duration { return g.accessTTL }

// RefreshTTL exposes the configured refresh-token lifetime for cookie max-age.
func (g *Generator) RefreshTTL() time.Duration { return g.refreshTTL }
