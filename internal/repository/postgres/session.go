package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blacnova/dashboard-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (id, account_id, token, remember_token, expires_at, remember_expires_at, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `

	if _, err := r.db.Exec(ctx, query,
		session.ID,
		session.AccountID,
		session.Token,
		session.RememberToken,
		session.ExpiresAt,
		session.RememberExpiresAt,
		session.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (model.Session, error) {
	const query = `
        SELECT id, account_id, token, remember_token, expires_at, remember_expires_at, created_at
        FROM sessions
        WHERE token = $1 OR remember_token = $1
    `

	var session model.Session
	if err := r.db.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.AccountID,
		&session.Token,
		&session.RememberToken,
		&session.ExpiresAt,
		&session.RememberExpiresAt,
		&session.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1 OR remember_token = $1`

	tag, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
