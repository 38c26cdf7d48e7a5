package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/keywarden/keywarden/internal/token/store"
)

// tokenShape is the three-segment dot-separated URL-safe structure of a
// signed token. The signature segment may be empty (unsecured tokens are
// still deniable input).
var tokenShape = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]*$`)

// RevocationRegistry is the minimal append-only denylist for otherwise
// stateless tokens. Records are created on explicit revoke and never
// updated or deleted outside housekeeping.
type RevocationRegistry struct {
	store store.RevokedTokens
}

func NewRevocationRegistry(s store.RevokedTokens) *RevocationRegistry {
	return &RevocationRegistry{store: s}
}

// Record inserts a denylist entry for the token value. The shape check
// exists because the registry is also used defensively against arbitrary
// input, not only values that passed the codec. Returns
// store.ErrAlreadyExists when the value was already recorded; callers
// decide whether that means idempotent success or replay.
func (r *RevocationRegistry) Record(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", ErrValidation)
	}
	if !tokenShape.MatchString(token) {
		return fmt.Errorf("%w: not a signed token", ErrValidation)
	}
	return r.store.InsertRevokedToken(ctx, token, expiresAt)
}

// IsRevoked reports whether the value is known-revoked. A false result is
// only absence of known revocation, never proof of validity.
func (r *RevocationRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return r.store.IsTokenRevoked(ctx, token)
}
