package otp

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/careershub/careers_api/internal/account"
	"github.com/careershub/careers_api/internal/mail"
)

// Manager drives the one-time-passcode lifecycle for password resets:
// issue a code, verify it, consume it on a successful reset. One manager
// serves any account type through the account.Directory capability.
type Manager struct {
	store  Store
	dir    account.Directory
	mailer mail.Mailer
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewManager wires the lifecycle against a store, a credential directory and
// a mailer. ttl is the validity window of issued codes.
func NewManager(store Store, dir account.Directory, mailer mail.Mailer, ttl time.Duration, logger *slog.Logger) *Manager {
	return &Manager{store: store, dir: dir, mailer: mailer, ttl: ttl, logger: logger, now: time.Now}
}

// WithClock overrides the manager clock. Test hook.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Request issues a fresh 6-digit code for the account behind email,
// overwriting any pending record, and mails it. The record is written before
// the mail attempt and is kept even when dispatch fails, so a retried request
// simply overwrites it.
func (m *Manager) Request(ctx context.Context, email string) error {
	ref, err := m.dir.LookupByEmail(ctx, email)
	if err != nil {
		return err
	}

	record := Record{
		Code:      generateCode(),
		ExpiresAt: m.now().Add(m.ttl),
		Verified:  false,
	}
	if err := m.store.Put(ctx, ref.ID, record); err != nil {
		return err
	}

	message := mail.Message{
		To:      ref.Email,
		Subject: "Your One-Time Password (OTP)",
		Body: fmt.Sprintf(
			"Hello,\n\nHere is your one-time password: %s\n\nIt expires in %s. If you didn't request it, please ignore this email.\n\nRegards,\nThe Careers Team\n",
			record.Code, m.ttl,
		),
	}
	if err := m.mailer.Send(ctx, message); err != nil {
		m.logger.Error("otp mail dispatch failed", "account_id", ref.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrMailFailure, err)
	}

	m.logger.Info("otp issued", "account_id", ref.ID, "expires_at", record.ExpiresAt)
	return nil
}

// Verify marks the pending code verified when the submission matches.
// Repeated correct submissions are accepted while the record remains valid.
func (m *Manager) Verify(ctx context.Context, email, code string) error {
	ref, err := m.dir.LookupByEmail(ctx, email)
	if err != nil {
		return err
	}

	record, ok, err := m.store.Get(ctx, ref.ID)
	if err != nil {
		return err
	}
	if !ok || record.ExpiredAt(m.now()) {
		return ErrExpired
	}
	if record.Code != code {
		return ErrInvalid
	}

	record.Verified = true
	if err := m.store.Put(ctx, ref.ID, record); err != nil {
		return err
	}

	m.logger.Info("otp verified", "account_id", ref.ID)
	return nil
}

// Reset replaces the account password once the pending code has been
// verified, then deletes the record (single use). Expiry is re-checked here:
// verification does not extend the window.
func (m *Manager) Reset(ctx context.Context, email, newPassword string) error {
	ref, err := m.dir.LookupByEmail(ctx, email)
	if err != nil {
		return err
	}

	record, ok, err := m.store.Get(ctx, ref.ID)
	if err != nil {
		return err
	}
	if !ok || !record.Verified {
		return ErrNotVerified
	}
	if record.ExpiredAt(m.now()) {
		return ErrExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := m.dir.SetPasswordHash(ctx, ref.ID, hash); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, ref.ID); err != nil {
		return err
	}

	m.logger.Info("password reset", "account_id", ref.ID)
	return nil
}

// generateCode returns a uniformly random 6-digit numeric code. It is purely
// random, not derived from any secret.
func generateCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
