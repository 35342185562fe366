package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/password"
)

func TestHashAndVerify(t *testing.T) {
	hasher := password.NewHasher()

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := hasher.Verify("s3cret-password", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = hasher.Verify("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashUsesFreshSalt(t *testing.T) {
	hasher := password.NewHasher()

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	hasher := password.NewHasher()

	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=2$not-base64!$xxxx",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	} {
		ok, err := hasher.Verify("whatever", encoded)
		require.Error(t, err)
		require.False(t, ok)
	}
}

func TestVerifyHonorsEmbeddedParams(t *testing.T) {
	weak := &password.Hasher{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
	hash, err := weak.Hash("pw")
	require.NoError(t, err)

	// A hasher with different parameters must still verify old hashes.
	ok, err := password.NewHasher().Verify("pw", hash)
	require.NoError(t, err)
	require.True(t, ok)
}
