package scopes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("splits on whitespace and dedupes", func(t *testing.T) {
		s := Parse("read  write read admin")
		require.Equal(t, Set{"read", "write", "admin"}, s)
	})

	t.Run("empty string yields empty set", func(t *testing.T) {
		require.Empty(t, Parse(""))
		require.Empty(t, Parse("   "))
	})

	t.Run("round-trips through String", func(t *testing.T) {
		s := Parse("read write")
		require.Equal(t, s, Parse(s.String()))
	})
}

func TestContains(t *testing.T) {
	t.Parallel()

	granted := Parse("read write admin")

	require.True(t, granted.Contains(Parse("read")))
	require.True(t, granted.Contains(Parse("write admin")))
	require.True(t, granted.Contains(nil), "empty subset is vacuously contained")
	require.False(t, granted.Contains(Parse("read delete")))
	require.False(t, Set(nil).Contains(Parse("read")))
}

func TestIncludes(t *testing.T) {
	t.Parallel()

	granted := Parse("read write")

	require.True(t, granted.Includes(), "empty wanted list always matches")
	require.True(t, granted.Includes("write", "delete"), "any single match suffices")
	require.False(t, granted.Includes("delete", "admin"))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		token     string
		requested string
		app       string
		want      bool
	}{
		{"all empty", "", "", "", true},
		{"empty requested always matches", "read write", "", "", true},
		{"requested subset of token", "read write", "read", "", true},
		{"requested exceeds token", "read", "read write", "", false},
		{"app restricts requested", "read write", "write", "read", false},
		{"app allows requested", "read write", "write", "read write", true},
		{"empty token with requested", "", "read", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Match(Parse(tc.token), Parse(tc.requested), Parse(tc.app))
			require.Equal(t, tc.want, got)
		})
	}
}
