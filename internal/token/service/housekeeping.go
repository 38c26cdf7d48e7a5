package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/keywarden/keywarden/internal/token/store"
	"github.com/keywarden/keywarden/pkg/slogx"
)

// Housekeeping periodically purges revocation records whose recorded claim
// expiry has passed. An expired token fails verification on its own, so the
// denylist entry no longer serves a purpose.
type Housekeeping struct {
	Revoked  store.RevokedTokens
	Interval time.Duration
}

// Run blocks until ctx is cancelled, purging on every tick.
func (h *Housekeeping) Run(ctx context.Context) {
	interval := h.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	l := slogx.FromContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.Revoked.DeleteExpiredRevokedTokens(ctx, time.Now().UTC()); err != nil {
				l.Warn("revoked token purge failed", slog.Any("error", err))
			}
		}
	}
}
