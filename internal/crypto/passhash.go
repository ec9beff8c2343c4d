// Package crypto implements server-side password hashing, one-time code
// generation and the constant-time comparisons used during verification.
package crypto

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the fixed work factor for credential hashes.
const BcryptCost = 10

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// dummyHash is computed once at process start so the record-absent
// verification path still pays a full-cost bcrypt comparison.
var dummyHash = mustHash("beefirst-dummy-credential")

func mustHash(s string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(s), BcryptCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}

// HashPassword returns the bcrypt hash of password at the fixed cost.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword verifies password against a stored bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyHash returns the placeholder hash compared when no stored hash
// exists. Same cost factor as real hashes.
func DummyHash() string { return dummyHash }
