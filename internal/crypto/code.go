package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strings"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 4

// GenerateCode returns n decimal digits drawn from a cryptographically
// secure source.
func GenerateCode(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d.Int64()))
	}
	return b.String(), nil
}

// DummyCode returns the fixed placeholder compared when no record exists.
func DummyCode(n int) string { return strings.Repeat("0", n) }

// VerifyCode compares a stored code against a submitted one in constant time.
func VerifyCode(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
