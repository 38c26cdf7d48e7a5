// Package store defines the data access contracts the token core consumes.
// Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/keywarden/keywarden/internal/token/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the durable backend.
type Store interface {
	Clients() Clients
	Subjects() Subjects
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backend is still reachable.
	Ping(ctx context.Context) error
}

type Clients interface {
	// GetClientByUID fetches a client by its public identifier.
	GetClientByUID(ctx context.Context, uid string) (domain.Client, error)

	// CreateClient inserts a new client record (id is a ULID supplied by
	// the app; secret_hash may be empty for public clients).
	CreateClient(ctx context.Context, c domain.Client) error
}

type Subjects interface {
	// GetSubjectByEmail resolves an external subject reference to its record.
	GetSubjectByEmail(ctx context.Context, email string) (domain.Subject, error)

	// CreateSubject inserts a new subject record.
	CreateSubject(ctx context.Context, s domain.Subject) error
}

// RevokedTokens is the durable backing of the revocation registry. Insert
// must be atomic insert-if-absent: concurrent inserts of the same token
// value yield exactly one success, all others ErrAlreadyExists. That
// primitive is the core's only consistency guard for refresh rotation.
type RevokedTokens interface {
	// InsertRevokedToken records a token value as revoked. expiresAt is the
	// token's claim expiry when known (zero otherwise) and only drives
	// housekeeping.
	InsertRevokedToken(ctx context.Context, token string, expiresAt time.Time) error

	// IsTokenRevoked reports whether the value is known-revoked. False
	// means "not known-revoked", never "definitely valid".
	IsTokenRevoked(ctx context.Context, token string) (bool, error)

	// DeleteExpiredRevokedTokens purges records whose recorded expiry has
	// passed. Housekeeping only.
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) error
}
