// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// State is the lifecycle state of a registration record.
type State string

// Lifecycle states. StateNone stands for "no record" and is never persisted.
const (
	StateNone    State = ""
	StateClaimed State = "CLAIMED"
	StateActive  State = "ACTIVE"
	StateExpired State = "EXPIRED"
	StateLocked  State = "LOCKED"
)

// Released reports whether the state frees the identity for a fresh claim.
func (s State) Released() bool { return s == StateExpired || s == StateLocked }

// Event is a trigger that may advance a registration's state.
type Event int

// Events observed by the store during claim and verification.
const (
	EventClaim Event = iota
	EventVerifyPassed
	EventWindowElapsed
	EventAttemptsExhausted
)

// Next returns the state an event leads to from the current state.
// The second return is false when the transition is not allowed.
// The graph is forward-only: ACTIVE is terminal, EXPIRED and LOCKED
// accept only a fresh claim.
func Next(s State, e Event) (State, bool) {
	switch s {
	case StateNone:
		if e == EventClaim {
			return StateClaimed, true
		}
	case StateClaimed:
		switch e {
		case EventVerifyPassed:
			return StateActive, true
		case EventWindowElapsed:
			return StateExpired, true
		case EventAttemptsExhausted:
			return StateLocked, true
		}
	case StateExpired, StateLocked:
		if e == EventClaim {
			return StateClaimed, true
		}
	case StateActive:
		// terminal
	}
	return s, false
}

// VerifyResult is the outcome of a verification attempt. The set is closed;
// everything except VerifySuccess must look identical to an external caller.
// The zero value is not a valid result.
type VerifyResult int

const (
	VerifySuccess VerifyResult = iota + 1
	VerifyInvalid
	VerifyExpired
	VerifyLocked
	VerifyNotFound
)

// String returns the canonical name used in logs and metrics labels.
func (r VerifyResult) String() string {
	switch r {
	case VerifySuccess:
		return "success"
	case VerifyInvalid:
		return "invalid"
	case VerifyExpired:
		return "expired"
	case VerifyLocked:
		return "locked"
	case VerifyNotFound:
		return "not_found"
	}
	return "unknown"
}

// Registration is one row of the registrations table: a claim on an email
// identity and everything needed to verify it.
type Registration struct {
	ID               uuid.UUID // assigned on first claim, reused on re-claim
	Email            string    // normalized, unique natural key
	PasswordHash     *string   // bcrypt; nil unless state is CLAIMED or ACTIVE
	VerificationCode string    // fixed-length numeric, regenerated per claim
	State            State
	AttemptCount     int        // failed verifications since the current claim
	CreatedAt        time.Time  // store clock at claim time, window basis
	ActivatedAt      *time.Time // set once, on the transition to ACTIVE
}
