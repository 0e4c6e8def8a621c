// internal/pkg/otp/generator.go
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const DefaultLength = 6

// Generate returns a random digit string of the given length using a CSPRNG.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate OTP digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
