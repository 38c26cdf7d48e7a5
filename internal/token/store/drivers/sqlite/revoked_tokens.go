package sqlite

import (
	"context"
	"database/sql"
	"time"
)

type revokedTokensRepo struct {
	db *sql.DB
}

// InsertRevokedToken relies on the primary key over the token value: the
// second concurrent insert of the same value fails the unique constraint
// and is reported as store.ErrAlreadyExists.
func (r *revokedTokensRepo) InsertRevokedToken(ctx context.Context, token string, expiresAt time.Time) error {
	var exp any
	if !expiresAt.IsZero() {
		exp = expiresAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (token, expires_at, created_at)
		VALUES (?, ?, ?)`,
		token, exp, time.Now().UTC())
	return mapConstraint(err)
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(1) FROM revoked_tokens WHERE token = ?`, token).Scan(&n)
	if err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return n > 0, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM revoked_tokens
		WHERE expires_at IS NOT NULL AND expires_at < ?`, now.UTC())
	return err
}
