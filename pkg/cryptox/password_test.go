package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	t.Parallel()

	hash, err := HashSecret("client-secret")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifySecret("client-secret", hash))
	require.ErrorIs(t, VerifySecret("wrong", hash), ErrMismatch)
}

func TestVerifySecretRejectsBadFormat(t *testing.T) {
	t.Parallel()

	for _, encoded := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$c$c"} {
		require.Error(t, VerifySecret("secret", encoded))
	}
}

func TestHashSecretSalts(t *testing.T) {
	t.Parallel()

	a, err := HashSecret("same")
	require.NoError(t, err)
	b, err := HashSecret("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b, "per-hash salts must differ")
}
