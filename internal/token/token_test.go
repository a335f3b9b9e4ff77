package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)

	signed, err := issuer.Issue("acct-1")
	require.NoError(t, err)

	id, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "acct-1", id)
}

func TestVerifyHonorsExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	issuer := NewIssuer([]byte("secret"), time.Hour).WithClock(func() time.Time { return clock })

	signed, err := issuer.Issue("acct-1")
	require.NoError(t, err)

	clock = issuedAt.Add(59 * time.Minute)
	id, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "acct-1", id)

	clock = issuedAt.Add(61 * time.Minute)
	_, err = issuer.Verify(signed)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewIssuer([]byte("secret-a"), time.Hour).Issue("acct-1")
	require.NoError(t, err)

	_, err = NewIssuer([]byte("secret-b"), time.Hour).Verify(signed)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := issuer.Verify(tok)
		require.ErrorIs(t, err, ErrMalformed, "token %q", tok)
	}
}

func TestVerifyRejectsMissingAccountID(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), time.Hour)

	signed, err := issuer.Issue("")
	require.NoError(t, err)

	_, err = issuer.Verify(signed)
	require.ErrorIs(t, err, ErrMalformed)
}
