// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/AnibalRGC/beefirst/internal/model"
)

// RegistrationStore owns the registration record lifecycle. It is the single
// synchronization point: callers never read a record and write based on that
// read outside these two operations.
type RegistrationStore interface {
	// Claim atomically creates a live record for email, or overwrites a
	// released (EXPIRED/LOCKED) one. Returns errs.ErrAlreadyClaimed when a
	// live record blocks the write. Exactly one of any set of concurrent
	// callers succeeds per claimable state.
	Claim(ctx context.Context, email, passwordHash, code string) error

	// VerifyAndActivate validates one verification attempt under a row lock
	// and applies whatever transition the outcome demands. Both the code and
	// the password comparison always run, with placeholder values when no
	// CLAIMED record exists. The error return is reserved for infrastructure
	// failure; domain outcomes arrive as the VerifyResult.
	VerifyAndActivate(ctx context.Context, email, code, password string) (model.VerifyResult, error)
}
