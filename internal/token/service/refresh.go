package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/keywarden/keywarden/internal/token/domain"
	"github.com/keywarden/keywarden/internal/token/store"
	"github.com/keywarden/keywarden/pkg/scopes"
	"github.com/keywarden/keywarden/pkg/slogx"
)

// ClientCredentials are caller-supplied client credentials, if any were
// presented with the grant request.
type ClientCredentials struct {
	UID    string
	Secret string
}

// RefreshRequest carries one refresh-token exchange. RefreshToken is the
// pair resolved (decoded and verified) upstream; RefreshTokenParam is the
// raw parameter as received, kept so presence can be checked even when
// resolution failed.
type RefreshRequest struct {
	RefreshToken      *domain.TokenPair
	RefreshTokenParam string
	Credentials       *ClientCredentials
	Scopes            scopes.Set
}

// RefreshGrant orchestrates the refresh-token exchange: stage-ordered
// validation of the incoming token and client credentials, the anti-reuse
// commit, and issuance of the successor pair.
type RefreshGrant struct {
	Tokens   *TokenService
	Registry *RevocationRegistry

	// RefreshTokenRevokedOnUse defers revocation of the old refresh token
	// until its successor is used. When false (the default policy), the old
	// token is revoked immediately at commit.
	RefreshTokenRevokedOnUse bool

	// TTLPolicy computes the successor pair's lifetime from the resolved
	// client. Nil falls back to the token service default.
	TTLPolicy func(client *domain.Client) time.Duration
}

// Authorize runs the exchange in a single pass. Stages execute in fixed
// order and the first failure short-circuits the rest; no side effects
// occur before commit.
func (g *RefreshGrant) Authorize(ctx context.Context, req RefreshRequest) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	// 1. Presence
	if req.RefreshToken == nil && req.RefreshTokenParam == "" {
		return nil, ErrInvalidRequest
	}

	// 2. Validity. Decoding happened upstream; a token that failed
	// verification arrives here as nil.
	rt := req.RefreshToken
	if rt == nil {
		return nil, ErrInvalidGrant
	}
	revoked, err := g.Tokens.Revoked(ctx, rt)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidGrant
	}

	// 3. Client match. Only attempted when credentials were supplied.
	var client *domain.Client
	if req.Credentials != nil {
		client, err = g.Tokens.FindClientByUIDAndSecret(ctx, req.Credentials.UID, req.Credentials.Secret)
		if err != nil {
			return nil, err
		}
		if client == nil {
			l.Info("refresh grant client authentication failed",
				slog.String("client_uid", req.Credentials.UID))
			return nil, ErrInvalidClient
		}
	}

	// 4. Client/token binding
	if client != nil && rt.ClientUID != client.UID {
		return nil, ErrInvalidGrant
	}

	// 5. Scope validation: requested scopes must be a subset of the grant.
	if len(req.Scopes) > 0 && !rt.Scopes.Contains(req.Scopes) {
		return nil, ErrInvalidScope
	}

	return g.commit(ctx, rt, client)
}

// commit is the only stage with side effects. The revocation record's
// insert-if-absent semantics guarantee at most one concurrent caller
// observes the token as unused and proceeds to issue.
func (g *RefreshGrant) commit(
	ctx context.Context,
	rt *domain.TokenPair,
	client *domain.Client,
) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	// Re-checked at commit time on top of the validity stage: the grant may
	// have been replayed between the two reads.
	revoked, err := g.Tokens.Revoked(ctx, rt)
	if err != nil {
		return nil, err
	}
	if revoked {
		l.Warn("refresh token replay detected", slog.String("subject_id", rt.SubjectID))
		return nil, ErrTokenReuse
	}

	if !g.RefreshTokenRevokedOnUse {
		err := g.Registry.Record(ctx, rt.RefreshToken, rt.ExpiresAt())
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race to a concurrent exchange of the same token.
			l.Warn("refresh token replay detected at commit", slog.String("subject_id", rt.SubjectID))
			return nil, ErrTokenReuse
		}
		if err != nil {
			return nil, err
		}
	}

	lifetime := g.Tokens.AccessTTL
	if g.TTLPolicy != nil {
		lifetime = g.TTLPolicy(client)
	}

	issueClient := client
	if issueClient == nil && rt.ClientUID != "" {
		issueClient = &domain.Client{ID: rt.ClientID, UID: rt.ClientUID}
	}

	// The successor carries the old grant's scopes, never the narrower
	// requested set.
	return g.Tokens.Issue(ctx, issueClient, rt.SubjectID, rt.Scopes, lifetime, true)
}
