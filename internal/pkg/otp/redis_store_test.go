// internal/pkg/otp/redis_store_test.go
package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "gastro-insights/internal/pkg/errors"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_VerifyConsumesOnSuccess(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, "123456"))
	assert.True(t, mr.Exists("otp:1"))

	require.NoError(t, store.Verify(ctx, 1, "123456"))
	assert.False(t, mr.Exists("otp:1"))

	assert.ErrorIs(t, store.Verify(ctx, 1, "123456"), xerrors.ErrOTPNotFound)
}

func TestRedisStore_VerifyUnknownAdmin(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Minute)

	assert.ErrorIs(t, store.Verify(context.Background(), 99, "123456"), xerrors.ErrOTPNotFound)
}

func TestRedisStore_MismatchPersistsAttempts(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, "123456"))

	var attemptsErr *xerrors.OTPAttemptsError

	err := store.Verify(ctx, 1, "000000")
	require.ErrorAs(t, err, &attemptsErr)
	assert.Equal(t, 2, attemptsErr.Remaining)
	// The entry must survive the mismatch with its TTL intact.
	assert.True(t, mr.Exists("otp:1"))
	assert.Greater(t, mr.TTL("otp:1"), time.Duration(0))

	err = store.Verify(ctx, 1, "000000")
	require.ErrorAs(t, err, &attemptsErr)
	assert.Equal(t, 1, attemptsErr.Remaining)

	// The correct code still works while attempts remain.
	require.NoError(t, store.Verify(ctx, 1, "123456"))
	assert.False(t, mr.Exists("otp:1"))
}

func TestRedisStore_AttemptsExhaustion(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, "123456"))

	var attemptsErr *xerrors.OTPAttemptsError
	for want := MaxAttempts - 1; want >= 0; want-- {
		err := store.Verify(ctx, 1, "000000")
		require.ErrorAs(t, err, &attemptsErr)
		assert.Equal(t, want, attemptsErr.Remaining)
	}

	// Once exhausted even the correct code is rejected and the entry destroyed.
	assert.ErrorIs(t, store.Verify(ctx, 1, "123456"), xerrors.ErrOTPAttemptsExceeded)
	assert.False(t, mr.Exists("otp:1"))

	assert.ErrorIs(t, store.Verify(ctx, 1, "123456"), xerrors.ErrOTPNotFound)
}

func TestRedisStore_LogicalExpiryBeforeRedisReaps(t *testing.T) {
	// The redis key TTL is twice the logical TTL, so an entry whose
	// ExpiresAt has passed is still present and must read as expired,
	// not missing.
	store, mr := newTestRedisStore(t, 10*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, "123456"))
	time.Sleep(20 * time.Millisecond)

	assert.True(t, mr.Exists("otp:1"))
	assert.ErrorIs(t, store.Verify(ctx, 1, "123456"), xerrors.ErrOTPExpired)

	// The expired entry is destroyed on first sight.
	assert.False(t, mr.Exists("otp:1"))
	assert.ErrorIs(t, store.Verify(ctx, 1, "123456"), xerrors.ErrOTPNotFound)
}

func TestRedisStore_PutSupersedesEntry(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 1, "111111"))

	var attemptsErr *xerrors.OTPAttemptsError
	require.ErrorAs(t, store.Verify(ctx, 1, "000000"), &attemptsErr)

	// A fresh code resets both the code and the attempt counter.
	require.NoError(t, store.Put(ctx, 1, "222222"))

	err := store.Verify(ctx, 1, "000000")
	require.ErrorAs(t, err, &attemptsErr)
	assert.Equal(t, MaxAttempts-1, attemptsErr.Remaining)

	// The superseded code no longer matches.
	require.ErrorAs(t, store.Verify(ctx, 1, "111111"), &attemptsErr)
	assert.Equal(t, MaxAttempts-2, attemptsErr.Remaining)

	require.NoError(t, store.Verify(ctx, 1, "222222"))
}
