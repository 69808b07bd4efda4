package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const deleteTokenBytes = 16

// GenerateDeleteToken mints the per-review secret returned to a submitter
// once at creation time.
func GenerateDeleteToken() (string, error) {
	b := make([]byte, deleteTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashDeleteToken is what gets persisted; rows never hold the raw secret.
func HashDeleteToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// VerifyDeleteToken compares a presented token against a stored hash in
// constant time.
func VerifyDeleteToken(token, storedHash string) bool {
	computed := HashDeleteToken(token)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
