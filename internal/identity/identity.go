// Package identity canonicalizes email identities so comparisons are
// case- and whitespace-insensitive.
package identity

import (
	"strings"

	"github.com/AnibalRGC/beefirst/internal/errs"
)

// Normalize trims surrounding whitespace, lowercases the address and checks
// its basic shape. Store operations only ever see normalized identities.
func Normalize(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" || strings.ContainsAny(e, " \t\r\n") {
		return "", errs.ErrInvalidInput
	}
	at := strings.IndexByte(e, '@')
	if at <= 0 || at != strings.LastIndexByte(e, '@') || at == len(e)-1 {
		return "", errs.ErrInvalidInput
	}
	domain := e[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", errs.ErrInvalidInput
	}
	return e, nil
}
