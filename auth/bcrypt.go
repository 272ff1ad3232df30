package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. Exposed so tests can lower it.
var HashCost = bcrypt.DefaultCost

// HashPassword will generate a password hash. The digest is self-describing,
// it embeds the algorithm, cost and salt, so verification needs no extra
// state.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password against
// the stored digest. Any failure, including a malformed digest, reports as
// ErrMismatchedHashAndPassword.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}

// VerifyPassword is the boolean form of ComparePasswordAndHash.
func VerifyPassword(password, hash string) bool {
	return ComparePasswordAndHash(password, hash) == nil
}
