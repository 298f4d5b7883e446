package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// GenerateResetToken returns a fresh reset token and the hash that is
// safe to persist. The plaintext only ever travels to the user's inbox.
func GenerateResetToken() (plaintext string, hash string) {
	plaintext = uuid.NewString()
	return plaintext, HashToken(plaintext)
}

// HashToken computes the one-way hash used to match reset tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
