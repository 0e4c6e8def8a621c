// internal/pkg/otp/redis_store.go
package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	xerrors "gastro-insights/internal/pkg/errors"
)

// RedisStore keeps OTP state in redis so multiple instances share one
// view of pending codes. Entries carry their own expiry instant; the
// redis key TTL runs longer than the logical TTL so Verify can still
// distinguish an expired code from a missing one before redis reaps it.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(adminID int64) string {
	return fmt.Sprintf("otp:%d", adminID)
}

func (s *RedisStore) Put(ctx context.Context, adminID int64, code string) error {
	e := entry{
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP entry: %w", err)
	}

	if err := s.client.Set(ctx, s.key(adminID), data, 2*s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}
	return nil
}

func (s *RedisStore) Verify(ctx context.Context, adminID int64, code string) error {
	key := s.key(adminID)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return xerrors.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load OTP: %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return fmt.Errorf("failed to unmarshal OTP entry: %w", err)
	}

	destroy, checkErr := e.check(time.Now(), code)
	if destroy {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete OTP: %w", err)
		}
		return checkErr
	}

	// Mismatch path: persist the bumped attempt counter, keeping the TTL.
	updated, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP entry: %w", err)
	}
	if err := s.client.Set(ctx, key, updated, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update OTP attempts: %w", err)
	}
	return checkErr
}
