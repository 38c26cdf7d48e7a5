package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. Key material comes from either
// KEYWARDEN_SECRET_KEY (HMAC algorithms) or KEYWARDEN_SIGNING_KEY_FILE
// (PEM, for RS256/EdDSA); exactly one must be set.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Algorithm      string `env:"KEYWARDEN_ALGORITHM" envDefault:"HS256"`
	SecretKey      string `env:"KEYWARDEN_SECRET_KEY"`
	SigningKeyFile string `env:"KEYWARDEN_SIGNING_KEY_FILE"`
	Generator      string `env:"KEYWARDEN_GENERATOR" envDefault:"jwt"`

	AccessTokenTTL           time.Duration `env:"KEYWARDEN_ACCESS_TOKEN_TTL" envDefault:"2h"`
	RefreshEnabled           bool          `env:"KEYWARDEN_REFRESH_ENABLED" envDefault:"true"`
	RefreshTokenRevokedOnUse bool          `env:"KEYWARDEN_REFRESH_REVOKED_ON_USE" envDefault:"false"`

	DatabaseFile      string `env:"KEYWARDEN_DATABASE_FILE" envDefault:"keywarden.db"`
	RevocationBackend string `env:"KEYWARDEN_REVOCATION_BACKEND" envDefault:"sqlite"`
	RedisAddr         string `env:"KEYWARDEN_REDIS_ADDR" envDefault:"localhost:6379"`

	HousekeepingInterval time.Duration `env:"KEYWARDEN_HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.SecretKey == "" && cfg.SigningKeyFile == "" {
		return Config{}, errors.New("either KEYWARDEN_SECRET_KEY or KEYWARDEN_SIGNING_KEY_FILE must be set")
	}

	switch cfg.RevocationBackend {
	case "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("unknown revocation backend %q", cfg.RevocationBackend)
	}

	return cfg, nil
}
