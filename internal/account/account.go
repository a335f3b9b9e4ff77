package account

import (
	"context"
	"errors"
)

// Ref is the slice of an account record the password-reset flow needs:
// a stable identifier plus the address the one-time code is mailed to.
type Ref struct {
	ID    string
	Email string
	Name  string
}

// Directory is the lookup/update capability a credential store exposes to the
// OTP lifecycle. Both user and company repositories implement it, so a single
// lifecycle manager serves both account types.
type Directory interface {
	LookupByEmail(ctx context.Context, email string) (Ref, error)
	SetPasswordHash(ctx context.Context, id string, hash []byte) error
}

var (
	// ErrNotFound is returned by Directory implementations when no account
	// matches the given email or identifier.
	ErrNotFound = errors.New("account not found")
	// ErrEmailTaken is returned when a registration reuses an existing email.
	ErrEmailTaken = errors.New("account email already exists")
)
