// internal/pkg/hash/hash.go
package hash

import (
	xerrors "gastro-insights/internal/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// Hasher wraps bcrypt with a configurable cost factor.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted one-way hash of the plaintext. Two calls on the
// same input yield different outputs.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", xerrors.ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. It never
// returns an error: a malformed hash reads as a mismatch.
func (h *Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
