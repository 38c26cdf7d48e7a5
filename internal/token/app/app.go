// Package app wires configuration, storage, the codec and the token
// services into a runnable unit.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/keywarden/keywarden/internal/token/service"
	"github.com/keywarden/keywarden/internal/token/store"
	redisdriver "github.com/keywarden/keywarden/internal/token/store/drivers/redis"
	"github.com/keywarden/keywarden/internal/token/store/drivers/sqlite"
	"github.com/keywarden/keywarden/pkg/jwtc"
	"github.com/keywarden/keywarden/pkg/slogx"
)

type App struct {
	Tokens  *service.TokenService
	Refresh *service.RefreshGrant

	cfg     Config
	log     *slog.Logger
	store   *sqlite.Store
	revoked store.RevokedTokens
	redis   *goredis.Client
}

// New builds the application. Generator resolution happens here: a missing
// or unusable generator is fatal to the deployment, not to a request.
func New(cfg Config) (*App, error) {
	logger := slogx.New(slogx.Config{
		Service: "keywarden",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	st, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	key := []byte(cfg.SecretKey)
	if cfg.SigningKeyFile != "" {
		key, err = os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("read signing key: %w", err)
		}
	}

	codec, err := jwtc.New(cfg.Algorithm, key)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	generator, err := jwtc.NewRegistry(codec).Resolve(cfg.Generator)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	a := &App{cfg: cfg, log: logger, store: st}

	a.revoked = st.RevokedTokens()
	if cfg.RevocationBackend == "redis" {
		a.redis = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		a.revoked = redisdriver.NewRevokedTokens(a.redis)
	}

	registry := service.NewRevocationRegistry(a.revoked)
	a.Tokens = &service.TokenService{
		Generator:      generator,
		Codec:          codec,
		Registry:       registry,
		Clients:        st.Clients(),
		Subjects:       st.Subjects(),
		AccessTTL:      cfg.AccessTokenTTL,
		RefreshEnabled: cfg.RefreshEnabled,
	}
	a.Refresh = &service.RefreshGrant{
		Tokens:                   a.Tokens,
		Registry:                 registry,
		RefreshTokenRevokedOnUse: cfg.RefreshTokenRevokedOnUse,
	}

	return a, nil
}

// Run blocks until ctx is cancelled, keeping the housekeeping loop alive.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("keywarden started",
		slog.String("algorithm", a.cfg.Algorithm),
		slog.String("generator", a.cfg.Generator),
		slog.String("revocation_backend", a.cfg.RevocationBackend),
		slog.Bool("refresh_enabled", a.cfg.RefreshEnabled),
	)

	hk := &service.Housekeeping{Revoked: a.revoked, Interval: a.cfg.HousekeepingInterval}
	hk.Run(slogx.WithContext(ctx, a.log))

	a.log.Info("keywarden shutting down")
	return a.Close()
}

func (a *App) Close() error {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	return a.store.Close()
}
