package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DefaultLength is the number of random bytes in a generated token
// (32 bytes = 64 hex characters).
const DefaultLength = 32

// Generate returns a cryptographically secure opaque token, used for
// email verification and invitation links.
func Generate() (string, error) {
	return GenerateN(DefaultLength)
}

// GenerateN returns a secure random token of n bytes, hex encoded.
func GenerateN(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
