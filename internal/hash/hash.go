package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	apperr "github.com/slchatapp/backend/pkg/errors"
)

// saltRounds is deliberately above bcrypt's default so stored hashes stay
// expensive to brute-force.
const saltRounds = 12

// Hash one-way hashes a password or refresh token for storage.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), saltRounds)
	if err != nil {
		return "", apperr.Internal("failed to hash text", err)
	}
	return string(hashed), nil
}

// Compare reports whether plain matches the stored hash. Any underlying
// failure counts as a mismatch, never as success.
func Compare(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// HashToken hashes a signed token for storage. Tokens run well past bcrypt's
// 72-byte input limit, so the plaintext is reduced to a SHA-256 digest first.
func HashToken(token string) (string, error) {
	return Hash(digest(token))
}

// CompareToken reports whether token matches a hash produced by HashToken.
func CompareToken(token, hashed string) bool {
	return Compare(digest(token), hashed)
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
