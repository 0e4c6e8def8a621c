package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	xerrors "gastro-insights/internal/pkg/errors"
)

func TestHash(t *testing.T) {
	h := NewHasher(4) // min cost keeps the test fast

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 70)},
		{"unicode password", "пароль密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.NotEmpty(t, hashed)
			require.True(t, strings.HasPrefix(hashed, "$2"), "hash should be in bcrypt format")
		})
	}
}

func TestHash_EmptyInput(t *testing.T) {
	h := NewHasher(4)

	_, err := h.Hash("")
	require.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestHash_UniqueSalts(t *testing.T) {
	h := NewHasher(4)
	password := "samepassword"

	hash1, err := h.Hash(password)
	require.NoError(t, err)

	hash2, err := h.Hash(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.True(t, h.Verify(password, hash1))
	require.True(t, h.Verify(password, hash2))
}

func TestVerify(t *testing.T) {
	h := NewHasher(4)
	hashed, err := h.Hash("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		hash      string
		want      bool
	}{
		{"correct password", "correct-password", hashed, true},
		{"wrong password", "wrong-password", hashed, false},
		{"case difference", "Correct-Password", hashed, false},
		{"empty password", "", hashed, false},
		{"malformed hash", "correct-password", "not-a-bcrypt-hash", false},
		{"empty hash", "correct-password", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, h.Verify(tt.plaintext, tt.hash))
		})
	}
}

func TestNewHasher_CostBounds(t *testing.T) {
	// Out-of-range costs fall back to the default.
	h := NewHasher(99)
	require.Equal(t, DefaultCost, h.cost)

	h = NewHasher(0)
	require.Equal(t, DefaultCost, h.cost)
}
