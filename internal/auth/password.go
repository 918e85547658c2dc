package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is a fixed work factor balancing brute-force resistance against
// login latency. Not tunable per call.
const bcryptCost = 12

// HashPassword produces a salted bcrypt hash of the plaintext. Each call
// generates a fresh salt, so hashing the same input twice yields different
// outputs.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether hashed was produced from plain. Malformed or
// mismatched hashes return false; this never panics or surfaces an error.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
