package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	xerrors "gastro-insights/internal/pkg/errors"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"default length", 0, DefaultLength},
		{"explicit length", 6, 6},
		{"longer code", 8, 8},
		{"negative falls back", -1, DefaultLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Generate(tt.length)
			require.NoError(t, err)
			require.Len(t, code, tt.want)
			for _, ch := range code {
				require.True(t, ch >= '0' && ch <= '9', "OTP must be digits only")
			}
		})
	}
}

func TestMemoryStore_VerifySuccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(5 * time.Minute)

	require.NoError(t, s.Put(ctx, 1, "123456"))
	require.NoError(t, s.Verify(ctx, 1, "123456"))

	// Single-shot: the code is consumed on success.
	require.ErrorIs(t, s.Verify(ctx, 1, "123456"), xerrors.ErrOTPNotFound)
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore(5 * time.Minute)
	require.ErrorIs(t, s.Verify(context.Background(), 99, "123456"), xerrors.ErrOTPNotFound)
}

func TestMemoryStore_Mismatch_RemainingAttempts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(5 * time.Minute)
	require.NoError(t, s.Put(ctx, 1, "123456"))

	var attemptsErr *xerrors.OTPAttemptsError

	err := s.Verify(ctx, 1, "000000")
	require.ErrorAs(t, err, &attemptsErr)
	require.Equal(t, 2, attemptsErr.Remaining)

	err = s.Verify(ctx, 1, "000000")
	require.ErrorAs(t, err, &attemptsErr)
	require.Equal(t, 1, attemptsErr.Remaining)

	// Correct code still works while attempts remain.
	require.NoError(t, s.Verify(ctx, 1, "123456"))
}

func TestMemoryStore_AttemptsExceeded(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(5 * time.Minute)
	require.NoError(t, s.Put(ctx, 1, "123456"))

	for i := 0; i < MaxAttempts; i++ {
		err := s.Verify(ctx, 1, "000000")
		var attemptsErr *xerrors.OTPAttemptsError
		require.ErrorAs(t, err, &attemptsErr)
	}

	// Fourth call fails even with the correct code, and destroys the entry.
	require.ErrorIs(t, s.Verify(ctx, 1, "123456"), xerrors.ErrOTPAttemptsExceeded)
	require.ErrorIs(t, s.Verify(ctx, 1, "123456"), xerrors.ErrOTPNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10 * time.Millisecond)
	require.NoError(t, s.Put(ctx, 1, "123456"))

	time.Sleep(20 * time.Millisecond)

	// Correct code after TTL still fails, and the entry is gone.
	require.ErrorIs(t, s.Verify(ctx, 1, "123456"), xerrors.ErrOTPExpired)
	require.ErrorIs(t, s.Verify(ctx, 1, "123456"), xerrors.ErrOTPNotFound)
}

func TestMemoryStore_Supersede(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(5 * time.Minute)

	require.NoError(t, s.Put(ctx, 1, "111111"))
	require.NoError(t, s.Put(ctx, 1, "222222"))

	// The old code no longer matches; the replacement starts with fresh attempts.
	var attemptsErr *xerrors.OTPAttemptsError
	require.ErrorAs(t, s.Verify(ctx, 1, "111111"), &attemptsErr)
	require.Equal(t, 2, attemptsErr.Remaining)
	require.NoError(t, s.Verify(ctx, 1, "222222"))
}

func TestMemoryStore_SweepOnPut(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(10 * time.Millisecond)

	require.NoError(t, s.Put(ctx, 1, "111111"))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Put(ctx, 2, "222222"))

	s.mu.Lock()
	_, stale := s.entries[1]
	s.mu.Unlock()
	require.False(t, stale, "expired entries should be swept on Put")
}

func TestMemoryStore_PerAdminIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(5 * time.Minute)

	require.NoError(t, s.Put(ctx, 1, "111111"))
	require.NoError(t, s.Put(ctx, 2, "222222"))

	require.NoError(t, s.Verify(ctx, 1, "111111"))
	require.NoError(t, s.Verify(ctx, 2, "222222"))
}
