package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/keywarden/keywarden/internal/token/domain"
	"github.com/keywarden/keywarden/internal/token/store"
	"github.com/keywarden/keywarden/pkg/cryptox"
	"github.com/keywarden/keywarden/pkg/jwtc"
	"github.com/keywarden/keywarden/pkg/scopes"
	"github.com/keywarden/keywarden/pkg/slogx"
)

// TokenService owns the token pair lifecycle: issuing sibling access and
// refresh claim sets, reconstructing read-only pairs from encoded strings,
// and marking refresh tokens revoked in the registry.
type TokenService struct {
	// Generator encodes claim sets. Resolved by name from the generator
	// registry at configuration time; the codec is the default.
	Generator jwtc.Generator

	// Codec is the decode/verify side. Decoding always goes through the
	// codec regardless of which generator minted the token.
	Codec *jwtc.Codec

	Registry *RevocationRegistry
	Clients  store.Clients
	Subjects store.Subjects

	// AccessTTL is the default pair lifetime when the caller supplies none.
	AccessTTL time.Duration

	// RefreshEnabled globally gates refresh-token issuance.
	RefreshEnabled bool
}

// Issue builds sibling access/refresh claim sets sharing subject, client,
// scopes and issued-at, and encodes both through the configured generator.
// The refresh sibling is only minted when issueRefresh is set and refresh
// issuance is globally enabled.
func (s *TokenService) Issue(
	ctx context.Context,
	client *domain.Client,
	subjectID string,
	scps scopes.Set,
	lifetime time.Duration,
	issueRefresh bool,
) (*domain.TokenPair, error) {
	now := time.Now().UTC()
	if lifetime <= 0 {
		lifetime = s.AccessTTL
	}

	var clientID, clientUID string
	if client != nil {
		clientID = client.ID
		clientUID = client.UID
	}

	access := jwtc.NewClaims(subjectID, clientUID, scps, jwtc.KindAccess, now, lifetime)
	accessStr, err := s.Generator.Generate(access)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	pair := &domain.TokenPair{
		AccessToken:     accessStr,
		ClientID:        clientID,
		ClientUID:       clientUID,
		SubjectID:       subjectID,
		Scopes:          scps,
		CreatedAt:       now,
		ExpiresIn:       lifetime,
		UseRefreshToken: issueRefresh && s.RefreshEnabled,
		Kind:            jwtc.KindAccess,
	}

	if pair.UseRefreshToken {
		refresh := jwtc.NewClaims(subjectID, clientUID, scps, jwtc.KindRefresh, now, lifetime)
		refreshStr, err := s.Generator.Generate(refresh)
		if err != nil {
			return nil, fmt.Errorf("issue refresh token: %w", err)
		}
		pair.RefreshToken = refreshStr
	}

	return pair, nil
}

// FromToken decodes an encoded token string and reconstructs a read-only
// pair view: enough to answer subject, client, scope, kind and expiry
// queries, with no ability to re-sign. Returns (nil, nil) on any decode
// failure; callers treat absent and invalid tokens identically here.
func (s *TokenService) FromToken(ctx context.Context, tokenStr string) (*domain.TokenPair, error) {
	claims, err := s.Codec.Decode(tokenStr)
	if err != nil {
		slogx.FromContext(ctx).Debug("token decode failed", slog.Any("error", err))
		return nil, nil
	}

	subjectID := claims.Subject
	if subjectID == "" && claims.SubjectRef != "" {
		sub, err := s.Subjects.GetSubjectByEmail(ctx, claims.SubjectRef)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		subjectID = sub.ID
	}

	var createdAt time.Time
	if claims.IssuedAt != nil {
		createdAt = claims.IssuedAt.Time
	}

	pair := &domain.TokenPair{
		ClientUID:       claims.ClientUID,
		SubjectID:       subjectID,
		Scopes:          scopes.New(claims.Scopes...),
		CreatedAt:       createdAt,
		ExpiresIn:       claims.Lifetime(),
		UseRefreshToken: s.RefreshEnabled,
		Kind:            claims.Kind,
	}
	if claims.Kind == jwtc.KindRefresh {
		pair.RefreshToken = tokenStr
	} else {
		pair.AccessToken = tokenStr
	}
	return pair, nil
}

// Revoke marks a refresh-kind pair revoked in the registry. Access-kind
// pairs are a no-op, and revoking twice has the same observable effect as
// once.
func (s *TokenService) Revoke(ctx context.Context, pair *domain.TokenPair) error {
	if pair == nil || pair.Kind != jwtc.KindRefresh {
		return nil
	}

	err := s.Registry.Record(ctx, pair.RefreshToken, pair.ExpiresAt())
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// Revoked queries the registry for the pair's encoded token string.
func (s *TokenService) Revoked(ctx context.Context, pair *domain.TokenPair) (bool, error) {
	return s.Registry.IsRevoked(ctx, pair.Value())
}

// Acceptable reports whether the pair is not expired, not revoked, and
// grants the requested scopes.
func (s *TokenService) Acceptable(ctx context.Context, pair *domain.TokenPair, requested scopes.Set) (bool, error) {
	if pair.Expired(time.Now().UTC()) {
		return false, nil
	}
	revoked, err := s.Revoked(ctx, pair)
	if err != nil {
		return false, err
	}
	if revoked {
		return false, nil
	}
	return pair.IncludesScope(requested...), nil
}

// RevokeToken revokes by raw token string: decode, then record refresh-kind
// tokens in the registry. Invalid and access-kind tokens are silently
// ignored, per RFC 7009 semantics.
func (s *TokenService) RevokeToken(ctx context.Context, tokenStr string) error {
	pair, err := s.FromToken(ctx, tokenStr)
	if err != nil {
		return err
	}
	if pair == nil {
		return nil
	}
	return s.Revoke(ctx, pair)
}

// FindClientByUIDAndSecret resolves a client by public identifier and
// verifies the supplied secret against its stored hash. Returns (nil, nil)
// when no matching client exists; confidential clients require the correct
// secret and public clients require an empty one.
func (s *TokenService) FindClientByUIDAndSecret(ctx context.Context, uid, secret string) (*domain.Client, error) {
	client, err := s.Clients.GetClientByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if client.SecretHash == "" {
		if secret != "" {
			return nil, nil
		}
		return &client, nil
	}

	if cryptox.VerifySecret(secret, client.SecretHash) != nil {
		slogx.FromContext(ctx).Info("client secret verification failed", slog.String("client_uid", uid))
		return nil, nil
	}
	return &client, nil
}
