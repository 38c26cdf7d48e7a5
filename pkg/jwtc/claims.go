// Package jwtc is the signed token codec: it encodes claim sets into
// compact three-segment signed tokens and decodes them back, verifying the
// signature and expiry in one pass. It also hosts the named generator
// registry through which alternative token generators can be plugged in.
package jwtc

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/keywarden/keywarden/pkg/idx"
)

// Kind distinguishes the two sibling tokens of a pair.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims is the claim set embedded in every signed token. Sibling access
// and refresh claims issued in one operation share subject, client, scopes
// and issued-at exactly.
type Claims struct {
	jwt.RegisteredClaims

	// ClientUID is the public identifier of the client the token is bound
	// to. Empty for clientless grants.
	ClientUID string `json:"client_uid,omitempty"`

	// SubjectRef is an external subject reference (e.g. an email address)
	// carried by externally minted tokens whose subject id must be resolved
	// through the subject store.
	SubjectRef string `json:"subject_ref,omitempty"`

	// Scopes are the granted scope names. Order is insertion order,
	// duplicates removed upstream.
	Scopes []string `json:"scopes,omitempty"`

	// Kind is either "access" or "refresh".
	Kind Kind `json:"kind"`
}

// NewClaims builds a claim set for one token of a pair. Expiry is always
// issuedAt + lifetime.
func NewClaims(
	subject, clientUID string,
	scopes []string,
	kind Kind,
	issuedAt time.Time,
	lifetime time.Duration,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(lifetime)),
			ID:        idx.New().String(),
		},
		ClientUID: clientUID,
		Scopes:    scopes,
		Kind:      kind,
	}
}

// Lifetime returns the duration between issued-at and expiry, or zero when
// either claim is missing.
func (c Claims) Lifetime() time.Duration {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}

// Expired reports whether the claim set's expiry has passed at the given
// instant.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}
