package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Bytes of entropy per token. 32 bytes keeps tokens at 256 bits, encoded
// as 64 hex characters.
const tokenBytes = 32

// New generates a cryptographically random opaque bearer token.
func New() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
