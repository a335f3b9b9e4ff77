package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/careershub/careers_api/internal/account"
	"github.com/careershub/careers_api/internal/logging"
	"github.com/careershub/careers_api/internal/mail"
)

type fakeDirectory struct {
	refs   map[string]account.Ref
	hashes map[string][]byte
}

func newFakeDirectory(refs ...account.Ref) *fakeDirectory {
	d := &fakeDirectory{refs: make(map[string]account.Ref), hashes: make(map[string][]byte)}
	for _, ref := range refs {
		d.refs[ref.Email] = ref
	}
	return d
}

func (d *fakeDirectory) LookupByEmail(_ context.Context, email string) (account.Ref, error) {
	ref, ok := d.refs[email]
	if !ok {
		return account.Ref{}, account.ErrNotFound
	}
	return ref, nil
}

func (d *fakeDirectory) SetPasswordHash(_ context.Context, id string, hash []byte) error {
	d.hashes[id] = hash
	return nil
}

type captureMailer struct {
	sent []mail.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, message mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, message)
	return nil
}

func newTestManager(t *testing.T) (*Manager, *MemoryStore, *fakeDirectory, *captureMailer, *time.Time) {
	t.Helper()
	store := NewMemoryStore()
	dir := newFakeDirectory(account.Ref{ID: "u1", Email: "a@x.com"})
	mailer := &captureMailer{}
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mgr := NewManager(store, dir, mailer, 15*time.Minute, logging.Discard()).
		WithClock(func() time.Time { return clock })
	return mgr, store, dir, mailer, &clock
}

func issuedCode(t *testing.T, store Store, accountID string) string {
	t.Helper()
	record, ok, err := store.Get(context.Background(), accountID)
	require.NoError(t, err)
	require.True(t, ok, "expected a pending record for %s", accountID)
	return record.Code
}

func TestRequestIssuesSixDigitCodeAndMailsIt(t *testing.T) {
	mgr, store, _, mailer, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))

	code := issuedCode(t, store, "u1")
	require.Len(t, code, 6)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "a@x.com", mailer.sent[0].To)
	require.Contains(t, mailer.sent[0].Body, code)
}

func TestRequestUnknownEmail(t *testing.T) {
	mgr, _, _, _, _ := newTestManager(t)

	err := mgr.Request(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, account.ErrNotFound)
}

func TestRequestMailFailureKeepsRecord(t *testing.T) {
	mgr, store, _, mailer, _ := newTestManager(t)
	mailer.err = errors.New("relay down")

	err := mgr.Request(context.Background(), "a@x.com")
	require.ErrorIs(t, err, ErrMailFailure)

	// The record was written before the mail attempt and stays put.
	_, ok, err := store.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyIsIdempotentWhileValid(t *testing.T) {
	mgr, store, _, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	code := issuedCode(t, store, "u1")

	require.NoError(t, mgr.Verify(ctx, "a@x.com", code))
	require.NoError(t, mgr.Verify(ctx, "a@x.com", code))

	record, _, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, record.Verified)
}

func TestVerifyWrongCode(t *testing.T) {
	mgr, store, _, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	code := issuedCode(t, store, "u1")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	require.ErrorIs(t, mgr.Verify(ctx, "a@x.com", wrong), ErrInvalid)

	record, _, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, record.Verified)
}

func TestVerifyAfterExpiry(t *testing.T) {
	mgr, store, _, _, clock := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	code := issuedCode(t, store, "u1")

	*clock = clock.Add(16 * time.Minute)
	require.ErrorIs(t, mgr.Verify(ctx, "a@x.com", code), ErrExpired)
}

func TestVerifyWithoutPendingRecord(t *testing.T) {
	mgr, _, _, _, _ := newTestManager(t)

	err := mgr.Verify(context.Background(), "a@x.com", "123456")
	require.ErrorIs(t, err, ErrExpired)
}

func TestResetRequiresVerification(t *testing.T) {
	mgr, _, _, _, _ := newTestManager(t)
	ctx := context.Background()

	// A live unexpired record exists, but it was never verified.
	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	require.ErrorIs(t, mgr.Reset(ctx, "a@x.com", "new-password"), ErrNotVerified)
}

func TestResetConsumesRecordAndUpdatesHash(t *testing.T) {
	mgr, store, dir, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	code := issuedCode(t, store, "u1")
	require.NoError(t, mgr.Verify(ctx, "a@x.com", code))
	require.NoError(t, mgr.Reset(ctx, "a@x.com", "new-password"))

	require.NoError(t, bcrypt.CompareHashAndPassword(dir.hashes["u1"], []byte("new-password")))

	_, ok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	require.False(t, ok, "record should be deleted after reset")

	// Single use: a second reset has nothing to consume.
	require.ErrorIs(t, mgr.Reset(ctx, "a@x.com", "another"), ErrNotVerified)
}

func TestResetRechecksExpiry(t *testing.T) {
	mgr, store, _, _, clock := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	code := issuedCode(t, store, "u1")
	require.NoError(t, mgr.Verify(ctx, "a@x.com", code))

	*clock = clock.Add(16 * time.Minute)
	require.ErrorIs(t, mgr.Reset(ctx, "a@x.com", "new-password"), ErrExpired)
}

func TestNewRequestSupersedesPendingCode(t *testing.T) {
	mgr, store, _, _, _ := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	first := issuedCode(t, store, "u1")

	// Force the second code to differ so the stale-code check is meaningful.
	for i := 0; i < 100; i++ {
		require.NoError(t, mgr.Request(ctx, "a@x.com"))
		if issuedCode(t, store, "u1") != first {
			break
		}
	}
	second := issuedCode(t, store, "u1")
	if first == second {
		t.Skip("could not draw a distinct second code")
	}

	require.ErrorIs(t, mgr.Verify(ctx, "a@x.com", first), ErrInvalid)
	require.NoError(t, mgr.Verify(ctx, "a@x.com", second))
}

func TestFailureOnOneKeyLeavesOthersIntact(t *testing.T) {
	store := NewMemoryStore()
	dir := newFakeDirectory(
		account.Ref{ID: "u1", Email: "a@x.com"},
		account.Ref{ID: "u2", Email: "b@x.com"},
	)
	mgr := NewManager(store, dir, &captureMailer{}, 15*time.Minute, logging.Discard())
	ctx := context.Background()

	require.NoError(t, mgr.Request(ctx, "a@x.com"))
	require.NoError(t, mgr.Request(ctx, "b@x.com"))

	require.ErrorIs(t, mgr.Verify(ctx, "a@x.com", "badbad"), ErrInvalid)

	codeB := issuedCode(t, store, "u2")
	require.NoError(t, mgr.Verify(ctx, "b@x.com", codeB))
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := generateCode()
		require.Len(t, code, 6)
		require.GreaterOrEqual(t, code, "100000")
		require.LessOrEqual(t, code, "999999")
	}
}
