package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/keywarden/keywarden/internal/token/domain"
	"github.com/keywarden/keywarden/internal/token/store"
	"github.com/keywarden/keywarden/pkg/idx"
	"github.com/keywarden/keywarden/pkg/scopes"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestClientsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	now := time.Now().UTC()
	c := domain.Client{
		ID:         idx.New().String(),
		UID:        "abc",
		Name:       "web-app",
		SecretHash: "hash",
		Scopes:     scopes.Parse("read write"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.Clients().CreateClient(ctx, c))

	got, err := s.Clients().GetClientByUID(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, scopes.Parse("read write"), got.Scopes)

	_, err = s.Clients().GetClientByUID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Clients().CreateClient(ctx, domain.Client{ID: idx.New().String(), UID: "abc", CreatedAt: now, UpdatedAt: now})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestSubjectsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sub := domain.Subject{ID: idx.New().String(), Email: "alice@example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.Subjects().CreateSubject(ctx, sub))

	got, err := s.Subjects().GetSubjectByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, sub.ID, got.ID)

	_, err = s.Subjects().GetSubjectByEmail(ctx, "bob@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRevokedTokensInsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.RevokedTokens()

	revoked, err := repo.IsTokenRevoked(ctx, "aaa.bbb.ccc")
	require.NoError(t, err)
	require.False(t, revoked, "never-seen value is not known-revoked")

	require.NoError(t, repo.InsertRevokedToken(ctx, "aaa.bbb.ccc", time.Now().Add(time.Hour)))

	revoked, err = repo.IsTokenRevoked(ctx, "aaa.bbb.ccc")
	require.NoError(t, err)
	require.True(t, revoked)

	// The second insert of the same value must lose.
	err = repo.InsertRevokedToken(ctx, "aaa.bbb.ccc", time.Now().Add(time.Hour))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestDeleteExpiredRevokedTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := s.RevokedTokens()

	now := time.Now().UTC()
	require.NoError(t, repo.InsertRevokedToken(ctx, "old.old.old", now.Add(-time.Hour)))
	require.NoError(t, repo.InsertRevokedToken(ctx, "new.new.new", now.Add(time.Hour)))
	require.NoError(t, repo.InsertRevokedToken(ctx, "unknown.exp.tok", time.Time{}))

	require.NoError(t, repo.DeleteExpiredRevokedTokens(ctx, now))

	revoked, err := repo.IsTokenRevoked(ctx, "old.old.old")
	require.NoError(t, err)
	require.False(t, revoked)

	for _, keep := range []string{"new.new.new", "unknown.exp.tok"} {
		revoked, err := repo.IsTokenRevoked(ctx, keep)
		require.NoError(t, err)
		require.True(t, revoked, "%s should survive housekeeping", keep)
	}
}
