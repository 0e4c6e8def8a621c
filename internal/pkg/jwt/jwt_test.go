package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "gastro-insights",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		TempTTL:    5 * time.Minute,
	})
	require.NoError(t, err)
	return m
}

func TestNewManager_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty secret", Config{AccessTTL: time.Minute, RefreshTTL: time.Minute, TempTTL: time.Minute}},
		{"zero access TTL", Config{Secret: "s", RefreshTTL: time.Minute, TempTTL: time.Minute}},
		{"negative refresh TTL", Config{Secret: "s", AccessTTL: time.Minute, RefreshTTL: -1, TempTTL: time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(tt.cfg)
			require.Error(t, err)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager(t)

	tests := []struct {
		name     string
		generate func() (string, error)
		kind     string
	}{
		{"access", func() (string, error) { return m.Generator.GenerateAccess(42, "alice") }, KindAccess},
		{"refresh", func() (string, error) { return m.Generator.GenerateRefresh(42, "alice") }, KindRefresh},
		{"temp", func() (string, error) { return m.Generator.GenerateTemp(42, "alice", "2fa") }, KindTemp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.generate()
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := m.Verifier.Verify(token, tt.kind)
			require.NoError(t, err)

			id, err := claims.AdminID()
			require.NoError(t, err)
			require.Equal(t, int64(42), id)
			require.Equal(t, "alice", claims.Username)
			require.Equal(t, tt.kind, claims.Kind)
			require.NotEmpty(t, claims.ID, "jti should be set")
		})
	}
}

func TestVerify_WrongKind(t *testing.T) {
	m := testManager(t)

	access, err := m.Generator.GenerateAccess(1, "alice")
	require.NoError(t, err)

	_, err = m.Verifier.Verify(access, KindRefresh)
	require.ErrorIs(t, err, ErrWrongTokenKind)

	_, err = m.Verifier.Verify(access, KindTemp)
	require.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestVerify_Expired(t *testing.T) {
	// Negative TTL is rejected by config validation, so build the generator
	// directly to get an already-expired token.
	gen := NewGenerator([]byte("test-secret-key-for-unit-tests"), "gastro-insights", -time.Minute, time.Hour, time.Minute)
	token, err := gen.GenerateAccess(1, "alice")
	require.NoError(t, err)

	ver := NewVerifier([]byte("test-secret-key-for-unit-tests"), "gastro-insights")
	_, err = ver.Verify(token, KindAccess)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	m := testManager(t)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verifier.Verify(tt.token, KindAccess)
			require.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := testManager(t)

	token, err := m.Generator.GenerateAccess(1, "alice")
	require.NoError(t, err)

	other := NewVerifier([]byte("a-different-secret"), "gastro-insights")
	_, err = other.Verify(token, KindAccess)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyTemp_Purpose(t *testing.T) {
	m := testManager(t)

	token, err := m.Generator.GenerateTemp(7, "bob", "2fa")
	require.NoError(t, err)

	claims, err := m.Verifier.VerifyTemp(token, "2fa")
	require.NoError(t, err)
	require.Equal(t, "2fa", claims.Purpose)

	_, err = m.Verifier.VerifyTemp(token, "password_reset")
	require.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestRefreshTokensDistinctButSameSubject(t *testing.T) {
	m := testManager(t)

	t1, err := m.Generator.GenerateAccess(9, "carol")
	require.NoError(t, err)
	t2, err := m.Generator.GenerateAccess(9, "carol")
	require.NoError(t, err)

	// ulid jti makes consecutive tokens distinct even within the same second
	require.NotEqual(t, t1, t2)

	c1, err := m.Verifier.VerifyAccess(t1)
	require.NoError(t, err)
	c2, err := m.Verifier.VerifyAccess(t2)
	require.NoError(t, err)
	require.Equal(t, c1.Subject, c2.Subject)
}
