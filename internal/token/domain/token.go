package domain

import (
	"time"

	"github.com/keywarden/keywarden/pkg/jwtc"
	"github.com/keywarden/keywarden/pkg/scopes"
)

// TokenPair is the runtime entity wrapping one or two claim sets plus their
// encoded string forms. It is created per grant request and never mutated
// after encoding; revocation state lives in the external registry, not here.
type TokenPair struct {
	AccessToken  string
	RefreshToken string

	// ClientID is the internal client record id. Empty for pairs rebuilt
	// from an externally minted token, where only the public uid is known.
	ClientID string

	// ClientUID is the client's public identifier. Empty for clientless
	// grants.
	ClientUID string

	SubjectID string
	Scopes    scopes.Set
	CreatedAt time.Time
	ExpiresIn time.Duration

	// UseRefreshToken reports whether a refresh token was issued at all.
	UseRefreshToken bool

	// Kind records which token string the pair was reconstructed from.
	// Pairs from a fresh grant carry both strings and KindAccess.
	Kind jwtc.Kind
}

// TokenType is fixed per RFC 6750.
func (p *TokenPair) TokenType() string { return "bearer" }

// ExpiresAt is the instant the pair's tokens stop verifying.
func (p *TokenPair) ExpiresAt() time.Time { return p.CreatedAt.Add(p.ExpiresIn) }

// Expired reports whether the pair's expiry has passed at the given instant.
func (p *TokenPair) Expired(now time.Time) bool { return now.After(p.ExpiresAt()) }

// Value returns the encoded token string the pair is identified by in the
// revocation registry: the refresh string for refresh-kind pairs, the
// access string otherwise.
func (p *TokenPair) Value() string {
	if p.Kind == jwtc.KindRefresh {
		return p.RefreshToken
	}
	return p.AccessToken
}

// SameCredential reports whether the other pair was minted for the same
// client id and subject id.
func (p *TokenPair) SameCredential(other *TokenPair) bool {
	if other == nil {
		return false
	}
	return p.ClientID == other.ClientID && p.SubjectID == other.SubjectID
}

// IncludesScope reports whether the pair grants at least one of the wanted
// scopes. An empty wanted list always matches.
func (p *TokenPair) IncludesScope(wanted ...string) bool {
	return p.Scopes.Includes(wanted...)
}
