package service

import (
	"context"
	"testing"
	"time"

	"github.com/keywarden/keywarden/internal/token/store"
	"github.com/stretchr/testify/require"
)

func TestRecordValidatesShape(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	registry := env.tokens.Registry

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		for _, input := range []string{"", "no-dots", "one.dot", "sp ace.in.token", "four.dot.seg.ments"} {
			err := registry.Record(ctx, input, time.Time{})
			require.ErrorIs(t, err, ErrValidation, "input %q", input)
		}
	})

	t.Run("accepts the three-segment shape", func(t *testing.T) {
		require.NoError(t, registry.Record(ctx, "eyJh.eyJz.c2ln", time.Time{}))

		// Unsecured tokens have an empty signature segment but are still
		// deniable input.
		require.NoError(t, registry.Record(ctx, "eyJh.eyJz.", time.Time{}))
	})

	t.Run("duplicate records surface as already-exists", func(t *testing.T) {
		require.NoError(t, registry.Record(ctx, "dup.dup.dup", time.Time{}))
		require.ErrorIs(t, registry.Record(ctx, "dup.dup.dup", time.Time{}), store.ErrAlreadyExists)
	})
}

func TestIsRevokedOpenWorld(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	registry := env.tokens.Registry

	revoked, err := registry.IsRevoked(ctx, "never.seen.value")
	require.NoError(t, err)
	require.False(t, revoked, "absence is not proof of validity, only absence of known revocation")

	require.NoError(t, registry.Record(ctx, "seen.and.revoked", time.Time{}))
	revoked, err = registry.IsRevoked(ctx, "seen.and.revoked")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = registry.IsRevoked(ctx, "")
	require.NoError(t, err)
	require.False(t, revoked)
}
