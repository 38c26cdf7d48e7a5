package domain

import (
	"testing"
	"time"

	"github.com/keywarden/keywarden/pkg/jwtc"
	"github.com/keywarden/keywarden/pkg/scopes"
	"github.com/stretchr/testify/require"
)

func TestTokenPairExpiry(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p := &TokenPair{CreatedAt: created, ExpiresIn: time.Hour}

	require.Equal(t, created.Add(time.Hour), p.ExpiresAt())
	require.False(t, p.Expired(created.Add(time.Hour-time.Millisecond)))
	require.True(t, p.Expired(created.Add(time.Hour+time.Millisecond)))
}

func TestTokenPairValue(t *testing.T) {
	t.Parallel()

	access := &TokenPair{AccessToken: "acc.tok.en", Kind: jwtc.KindAccess}
	require.Equal(t, "acc.tok.en", access.Value())

	refresh := &TokenPair{RefreshToken: "ref.tok.en", Kind: jwtc.KindRefresh}
	require.Equal(t, "ref.tok.en", refresh.Value())
}

func TestSameCredential(t *testing.T) {
	t.Parallel()

	a := &TokenPair{ClientID: "c1", SubjectID: "42"}

	require.True(t, a.SameCredential(&TokenPair{ClientID: "c1", SubjectID: "42"}))
	require.False(t, a.SameCredential(&TokenPair{ClientID: "c2", SubjectID: "42"}))
	require.False(t, a.SameCredential(&TokenPair{ClientID: "c1", SubjectID: "7"}))
	require.False(t, a.SameCredential(nil))
}

func TestTokenTypeIsBearer(t *testing.T) {
	t.Parallel()

	require.Equal(t, "bearer", (&TokenPair{}).TokenType())
}

func TestIncludesScope(t *testing.T) {
	t.Parallel()

	p := &TokenPair{Scopes: scopes.Parse("read write")}

	require.True(t, p.IncludesScope(), "empty wanted list always matches")
	require.True(t, p.IncludesScope("write", "admin"))
	require.False(t, p.IncludesScope("admin"))
}
