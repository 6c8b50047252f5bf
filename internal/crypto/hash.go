package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new password hashes.
// 12 keeps offline brute force expensive while staying under ~300ms per hash
// on current hardware.
const DefaultCost = 12

// HashPassword hashes a password with bcrypt at the given cost. A cost below
// DefaultCost is bumped up so a misconfigured environment can never weaken
// stored hashes.
func HashPassword(password string, cost int) (string, error) {
	if cost < DefaultCost {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks whether a candidate password matches the stored
// bcrypt hash. The comparison time does not depend on how many characters
// match. Returns (false, nil) on mismatch; an error only for malformed hashes.
func VerifyPassword(candidate, storedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
