package sqlite

import (
	"context"
	"database/sql"

	"github.com/keywarden/keywarden/internal/token/domain"
)

type subjectsRepo struct {
	db *sql.DB
}

func (r *subjectsRepo) GetSubjectByEmail(ctx context.Context, email string) (domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, created_at FROM subjects WHERE email = ?`, email)

	var s domain.Subject
	if err := row.Scan(&s.ID, &s.Email, &s.CreatedAt); err != nil {
		return domain.Subject{}, mapNotFound(err)
	}
	return s, nil
}

func (r *subjectsRepo) CreateSubject(ctx context.Context, s domain.Subject) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subjects (id, email, created_at) VALUES (?, ?, ?)`,
		s.ID, s.Email, s.CreatedAt)
	return mapConstraint(err)
}
