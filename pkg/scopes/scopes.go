// Package scopes implements the scope-name set algebra used by token
// issuance and grant validation. Scope names are compared by exact string
// equality and carried in insertion order with duplicates removed.
package scopes

import "strings"

// Set is an ordered, duplicate-free collection of scope names.
type Set []string

// New builds a Set from individual scope names, dropping duplicates while
// preserving first-seen order.
func New(names ...string) Set {
	seen := make(map[string]struct{}, len(names))
	out := make(Set, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Parse splits a space-delimited scope string into a Set. Parsing the
// serialization of a Set reproduces an equivalent Set.
func Parse(s string) Set {
	return New(strings.Fields(s)...)
}

// String serializes the Set back to its space-delimited form.
func (s Set) String() string {
	return strings.Join(s, " ")
}

// Has reports whether the named scope is a member of the Set.
func (s Set) Has(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

// Contains reports whether every scope in sub is a member of s.
// An empty sub is vacuously contained.
func (s Set) Contains(sub Set) bool {
	for _, n := range sub {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// Includes reports whether the Set grants at least one of the wanted scopes.
// An empty wanted list always matches.
func (s Set) Includes(wanted ...string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, n := range wanted {
		if s.Has(n) {
			return true
		}
	}
	return false
}

// Match checks requested scopes against a token's granted scopes and,
// when non-empty, the client application's allowed scopes. Empty requested
// scopes always match; otherwise requested must be a subset of token and,
// if app is non-empty, a subset of app as well.
func Match(token, requested, app Set) bool {
	if len(requested) == 0 {
		return true
	}
	if !token.Contains(requested) {
		return false
	}
	if len(app) > 0 && !app.Contains(requested) {
		return false
	}
	return true
}
