// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrAlreadyClaimed indicates the identity has a live claim and the
	// conditional write was rejected. It carries no detail about which
	// state blocked the claim.
	ErrAlreadyClaimed = errors.New("already claimed")

	// ErrInvalidInput indicates a request rejected by validation before
	// reaching the store.
	ErrInvalidInput = errors.New("invalid input")
)
