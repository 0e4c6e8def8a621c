// internal/pkg/jwt/verifier.go
package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
	ErrWrongTokenKind = errors.New("token is not of the expected kind")
)

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{
		secret: secret,
		issuer: issuer,
	}
}

// Verify validates signature, expiry and kind, and returns the claims.
func (v *Verifier) Verify(tokenString, expectedKind string) (*Claims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("jwt verifier has empty secret")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, ErrTokenMalformed
	}

	if !claims.IsKind(expectedKind) {
		return nil, ErrWrongTokenKind
	}

	return claims, nil
}

// VerifyAccess validates an access token.
func (v *Verifier) VerifyAccess(tokenString string) (*Claims, error) {
	return v.Verify(tokenString, KindAccess)
}

// VerifyRefresh validates a refresh token.
func (v *Verifier) VerifyRefresh(tokenString string) (*Claims, error) {
	return v.Verify(tokenString, KindRefresh)
}

// VerifyTemp validates a temp token and checks its purpose tag.
func (v *Verifier) VerifyTemp(tokenString, purpose string) (*Claims, error) {
	claims, err := v.Verify(tokenString, KindTemp)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}
