// internal/pkg/otp/store.go
package otp

import (
	"context"
	"sync"
	"time"

	xerrors "gastro-insights/internal/pkg/errors"
)

const MaxAttempts = 3

// Store holds at most one pending OTP per admin. A stored code is a
// single-shot credential: it is destroyed on successful verification,
// on expiry, on exhausting MaxAttempts, or when superseded by a new code.
type Store interface {
	// Put replaces any existing entry for adminID with a fresh code.
	Put(ctx context.Context, adminID int64, code string) error
	// Verify consumes the entry on success and reports lifecycle failures
	// by kind: ErrOTPNotFound, ErrOTPExpired, ErrOTPAttemptsExceeded, or
	// *OTPAttemptsError on a plain mismatch.
	Verify(ctx context.Context, adminID int64, code string) error
}

type entry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

func (e *entry) check(now time.Time, code string) (destroy bool, err error) {
	if now.After(e.ExpiresAt) || now.Equal(e.ExpiresAt) {
		return true, xerrors.ErrOTPExpired
	}
	if e.Attempts >= MaxAttempts {
		return true, xerrors.ErrOTPAttemptsExceeded
	}
	if e.Code != code {
		e.Attempts++
		return false, &xerrors.OTPAttemptsError{Remaining: MaxAttempts - e.Attempts}
	}
	return true, nil
}

// MemoryStore keeps OTP state in-process. Expiry is checked lazily on
// Verify; Put opportunistically sweeps other stale entries so the map
// does not grow without bound.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]*entry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]*entry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Put(_ context.Context, adminID int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, e := range s.entries {
		if now.After(e.ExpiresAt) {
			delete(s.entries, id)
		}
	}

	s.entries[adminID] = &entry{
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Verify(_ context.Context, adminID int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[adminID]
	if !ok {
		return xerrors.ErrOTPNotFound
	}

	destroy, err := e.check(time.Now(), code)
	if destroy {
		delete(s.entries, adminID)
	}
	return err
}
