package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/AnibalRGC/beefirst/internal/crypto"
	"github.com/AnibalRGC/beefirst/internal/errs"
	"github.com/AnibalRGC/beefirst/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// RegistrationRepo implements repository.RegistrationStore using PostgreSQL.
// All coordination happens in the database: the unique index on email
// linearizes claims, the row lock linearizes verification attempts.
type RegistrationRepo struct {
	db          *DB
	window      time.Duration
	maxAttempts int
}

// NewRegistrationRepo constructs a registration store with the given
// verification window and lockout threshold.
func NewRegistrationRepo(db *DB, window time.Duration, maxAttempts int) *RegistrationRepo {
	return &RegistrationRepo{db: db, window: window, maxAttempts: maxAttempts}
}

// Claim creates a live record for email, or overwrites a released one, in a
// single conditional upsert. There is no separate existence check: the
// condition on the stored row's state admits exactly one winner per
// claimable state, whatever the number of concurrent callers.
func (r *RegistrationRepo) Claim(ctx context.Context, email, passwordHash, code string) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	const q = `
INSERT INTO registrations (id, email, password_hash, verification_code, state, attempt_count, created_at, activated_at)
VALUES ($1, $2, $3, $4, 'CLAIMED', 0, now(), NULL)
ON CONFLICT (email) DO UPDATE SET
    password_hash     = EXCLUDED.password_hash,
    verification_code = EXCLUDED.verification_code,
    state             = 'CLAIMED',
    attempt_count     = 0,
    created_at        = now(),
    activated_at      = NULL
WHERE registrations.state IN ('EXPIRED', 'LOCKED')`
	tag, err := r.db.Pool.Exec(ctx, q, id, email, passwordHash, code)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyClaimed
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrAlreadyClaimed
	}
	return nil
}

// VerifyAndActivate runs one verification attempt and applies the resulting
// transition inside a single transaction. The row is taken FOR UPDATE so
// concurrent attempts on the same identity execute one at a time. Elapsed
// time is measured against the database clock selected in the same
// statement, never the caller's.
func (r *RegistrationRepo) VerifyAndActivate(ctx context.Context, email, code, password string) (res model.VerifyResult, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const sel = `
SELECT id, password_hash, verification_code, state, attempt_count, created_at, now()
FROM registrations WHERE email=$1 FOR UPDATE`

	var (
		reg      model.Registration
		stateStr string
		dbNow    time.Time
	)
	found := true
	scanErr := tx.QueryRow(ctx, sel, email).Scan(
		&reg.ID, &reg.PasswordHash, &reg.VerificationCode, &stateStr, &reg.AttemptCount, &reg.CreatedAt, &dbNow)
	switch {
	case scanErr == nil:
	case errors.Is(scanErr, pgx.ErrNoRows):
		found = false
	default:
		err = scanErr
		return 0, err
	}
	reg.Email = email
	reg.State = model.State(stateStr)

	// Both comparisons run on every path, before any branch. A missing,
	// released or already-active record compares against placeholders so
	// its cost matches a live one.
	storedCode := crypto.DummyCode(crypto.CodeLength)
	storedHash := crypto.DummyHash()
	live := found && reg.State == model.StateClaimed
	if live {
		storedCode = reg.VerificationCode
		if reg.PasswordHash != nil {
			storedHash = *reg.PasswordHash
		}
	}
	codeOK := crypto.VerifyCode(storedCode, code)
	passOK := crypto.VerifyPassword(storedHash, password)

	// A row already in LOCKED answers LOCKED, untouched. Correct inputs do
	// not revive it; only a fresh claim does.
	if found && reg.State == model.StateLocked {
		return model.VerifyLocked, nil
	}

	if !live {
		return model.VerifyNotFound, nil
	}

	if dbNow.Sub(reg.CreatedAt) > r.window {
		next, _ := model.Next(reg.State, model.EventWindowElapsed)
		const upd = `UPDATE registrations SET state=$2, password_hash=NULL WHERE id=$1`
		if _, err = tx.Exec(ctx, upd, reg.ID, next); err != nil {
			return 0, err
		}
		return model.VerifyExpired, nil
	}

	// A CLAIMED row with no attempt budget left returns LOCKED untouched.
	// Normally the locking attempt already moved the row to LOCKED; this
	// branch covers a threshold lowered between deploys.
	if reg.AttemptCount >= r.maxAttempts {
		return model.VerifyLocked, nil
	}

	if !codeOK || !passOK {
		if reg.AttemptCount+1 >= r.maxAttempts {
			next, _ := model.Next(reg.State, model.EventAttemptsExhausted)
			const upd = `UPDATE registrations SET attempt_count = attempt_count + 1, state=$2, password_hash=NULL WHERE id=$1`
			if _, err = tx.Exec(ctx, upd, reg.ID, next); err != nil {
				return 0, err
			}
			return model.VerifyLocked, nil
		}
		const upd = `UPDATE registrations SET attempt_count = attempt_count + 1 WHERE id=$1`
		if _, err = tx.Exec(ctx, upd, reg.ID); err != nil {
			return 0, err
		}
		return model.VerifyInvalid, nil
	}

	next, _ := model.Next(reg.State, model.EventVerifyPassed)
	const upd = `UPDATE registrations SET state=$2, activated_at=now() WHERE id=$1`
	if _, err = tx.Exec(ctx, upd, reg.ID, next); err != nil {
		return 0, err
	}
	return model.VerifySuccess, nil
}
