package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndVerify(t *testing.T) {
	codec := token.NewCodec(testSecret, time.Minute, time.Hour)

	access, err := codec.IssueAccess("user-1")
	require.NoError(t, err)

	claims, err := codec.Verify(access)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, token.KindAccess, claims.Kind)

	refresh, err := codec.IssueRefresh("user-1")
	require.NoError(t, err)

	claims, err = codec.Verify(refresh)
	require.NoError(t, err)
	require.Equal(t, token.KindRefresh, claims.Kind)
}

func TestSameInstantTokensDiffer(t *testing.T) {
	codec := token.NewCodec(testSecret, time.Minute, time.Hour)

	first, err := codec.IssuePair("user-1")
	require.NoError(t, err)
	second, err := codec.IssuePair("user-1")
	require.NoError(t, err)

	require.NotEqual(t, first.AccessToken, second.AccessToken)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)
	require.NotEqual(t, first.AccessToken, first.RefreshToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	codec := token.NewCodec(testSecret, -time.Minute, -time.Minute)

	raw, err := codec.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalid)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := token.NewCodec(testSecret, time.Minute, time.Hour)
	verifier := token.NewCodec("another-secret-another-secret-xx", time.Minute, time.Hour)

	raw, err := issuer.IssueAccess("user-1")
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, token.ErrInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := token.NewCodec(testSecret, time.Minute, time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, token.ErrInvalid)
	}
}

func TestMissingSecretIsConfigurationError(t *testing.T) {
	codec := token.NewCodec("", time.Minute, time.Hour)

	_, err := codec.IssueAccess("user-1")
	require.ErrorIs(t, err, token.ErrNotConfigured)

	_, err = codec.IssuePair("user-1")
	require.ErrorIs(t, err, token.ErrNotConfigured)

	_, err = codec.Verify("anything")
	require.ErrorIs(t, err, token.ErrNotConfigured)
}
