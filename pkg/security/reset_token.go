package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const resetTokenSize = 32

// NewResetToken generates a random 256-bit reset token. The plaintext is
// meant to be emailed to the user, the hash is what gets persisted.
// The value is high-entropy and single-use so a plain digest is enough,
// no signing key involved.
func NewResetToken() (plaintext, hash string, err error) {
	b := make([]byte, resetTokenSize)

	_, err = rand.Read(b)
	if err != nil {
		return "", "", err
	}

	plaintext = hex.EncodeToString(b)
	return plaintext, HashResetToken(plaintext), nil
}

// HashResetToken hashes a presented plaintext token the same way
// NewResetToken does, for lookup against the stored hash
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
