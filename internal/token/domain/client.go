package domain

import (
	"time"

	"github.com/keywarden/keywarden/pkg/scopes"
)

// Client is an application record allowed to hold tokens. UID is the public
// identifier presented by callers; ID is the internal record id.
type Client struct {
	ID         string
	UID        string
	Name       string
	SecretHash string // empty for public clients
	Scopes     scopes.Set
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
