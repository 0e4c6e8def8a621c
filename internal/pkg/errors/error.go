package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal server error")
	ErrDatabase     = errors.New("database query failed")
)

// Authentication flow errors
var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidTempToken    = errors.New("invalid or expired temporary token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrNotification        = errors.New("OTP send failed, retry later")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrSelfDelete          = errors.New("cannot delete your own account")
)

// OTP lifecycle errors
var (
	ErrOTPNotFound         = errors.New("no OTP found, request a new code")
	ErrOTPExpired          = errors.New("OTP expired, request a new code")
	ErrOTPAttemptsExceeded = errors.New("too many incorrect attempts, request a new code")
)

// OTPAttemptsError reports a code mismatch together with the attempts
// the caller has left before the entry is destroyed.
type OTPAttemptsError struct {
	Remaining int
}

func (e *OTPAttemptsError) Error() string {
	return fmt.Sprintf("incorrect OTP code, %d attempts remaining", e.Remaining)
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap extracts the underlying wrapped error.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
