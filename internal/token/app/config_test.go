package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("KEYWARDEN_SECRET_KEY", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "HS256", cfg.Algorithm)
	require.Equal(t, "jwt", cfg.Generator)
	require.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	require.True(t, cfg.RefreshEnabled)
	require.False(t, cfg.RefreshTokenRevokedOnUse)
	require.Equal(t, "sqlite", cfg.RevocationBackend)
}

func TestLoadConfigRequiresKeyMaterial(t *testing.T) {
	t.Setenv("KEYWARDEN_SECRET_KEY", "")
	t.Setenv("KEYWARDEN_SIGNING_KEY_FILE", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("KEYWARDEN_SECRET_KEY", "test-secret")
	t.Setenv("KEYWARDEN_REVOCATION_BACKEND", "dynamo")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("KEYWARDEN_SECRET_KEY", "test-secret")
	t.Setenv("KEYWARDEN_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("KEYWARDEN_REFRESH_REVOKED_ON_USE", "true")
	t.Setenv("KEYWARDEN_REVOCATION_BACKEND", "redis")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.True(t, cfg.RefreshTokenRevokedOnUse)
	require.Equal(t, "redis", cfg.RevocationBackend)
}
