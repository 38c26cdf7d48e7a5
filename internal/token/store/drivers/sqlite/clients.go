package sqlite

import (
	"context"
	"database/sql"

	"github.com/keywarden/keywarden/internal/token/domain"
	"github.com/keywarden/keywarden/pkg/scopes"
)

type clientsRepo struct {
	db *sql.DB
}

func (r *clientsRepo) GetClientByUID(ctx context.Context, uid string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, uid, name, secret_hash, scopes, created_at, updated_at
		FROM clients WHERE uid = ?`, uid)

	var c domain.Client
	var rawScopes string
	err := row.Scan(&c.ID, &c.UID, &c.Name, &c.SecretHash, &rawScopes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.Scopes = scopes.Parse(rawScopes)
	return c, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, uid, name, secret_hash, scopes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UID, c.Name, c.SecretHash, c.Scopes.String(), c.CreatedAt, c.UpdatedAt)
	return mapConstraint(err)
}
