package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor for new password hashes.
const HashCost = 10

// ErrHashingFailed indicates bcrypt rejected the input, e.g. a plaintext
// past its 72-byte limit. Callers treat this as an internal error, never a
// validation failure.
var ErrHashingFailed = errors.New("password hashing failed")

// HashPassword derives a salted bcrypt hash. Each call salts independently,
// so hashing the same plaintext twice yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailed, err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// bcrypt's own comparison is used rather than byte equality so mismatches
// do not leak position through timing.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
