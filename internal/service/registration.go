// Package service contains the registration orchestrator.
package service

import (
	"context"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/AnibalRGC/beefirst/internal/crypto"
	"github.com/AnibalRGC/beefirst/internal/errs"
	"github.com/AnibalRGC/beefirst/internal/identity"
	"github.com/AnibalRGC/beefirst/internal/model"
	"github.com/AnibalRGC/beefirst/internal/notify"
	"github.com/AnibalRGC/beefirst/internal/repository"
)

// MinPasswordLength is the minimum accepted password length in runes.
const MinPasswordLength = 8

// RegistrationService defines the two user-facing flows.
type RegistrationService interface {
	// Register claims the identity and hands the verification code to the
	// notifier. Returns the normalized email.
	Register(ctx context.Context, email, password string) (string, error)
	// Activate runs one verification attempt and returns the store's result
	// unchanged.
	Activate(ctx context.Context, email, code, password string) (model.VerifyResult, error)
}

type RegistrationServiceImpl struct {
	store  repository.RegistrationStore
	sender notify.Sender
	logger *zap.Logger
}

// NewRegistrationService constructs the orchestrator with its collaborators.
func NewRegistrationService(store repository.RegistrationStore, sender notify.Sender, logger *zap.Logger) *RegistrationServiceImpl {
	return &RegistrationServiceImpl{store: store, sender: sender, logger: logger}
}

// Register normalizes the identity, generates the code and credential hash,
// and delegates the conditional write to the store. There is no existence
// check here: the claim either commits or reports ErrAlreadyClaimed.
func (s *RegistrationServiceImpl) Register(ctx context.Context, email, password string) (string, error) {
	norm, err := identity.Normalize(email)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", errs.ErrInvalidInput
	}
	// bcrypt rejects inputs past its limit; catch them here so they fail
	// like any other invalid input.
	if len(password) > crypto.MaxPasswordBytes {
		return "", errs.ErrInvalidInput
	}

	code, err := crypto.GenerateCode(crypto.CodeLength)
	if err != nil {
		return "", err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", err
	}

	if err := s.store.Claim(ctx, norm, hash, code); err != nil {
		return "", err
	}

	// Delivery runs only after the claim committed, and stays best-effort.
	if err := s.sender.Deliver(ctx, norm, code); err != nil {
		s.logger.Warn("verification delivery failed", zap.String("email", norm), zap.Error(err))
	}
	return norm, nil
}

// Activate validates the inputs and passes the attempt to the store. The
// five-way result comes back unchanged; collapsing it into one uniform
// external response is the transport layer's job.
func (s *RegistrationServiceImpl) Activate(ctx context.Context, email, code, password string) (model.VerifyResult, error) {
	norm, err := identity.Normalize(email)
	if err != nil {
		return model.VerifyInvalid, nil
	}
	if !validCode(code) {
		return model.VerifyInvalid, nil
	}
	return s.store.VerifyAndActivate(ctx, norm, code, password)
}

// validCode reports whether code has exactly the fixed number of decimal
// digits. Anything else is a contract violation that never reaches the store.
func validCode(code string) bool {
	if len(code) != crypto.CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
