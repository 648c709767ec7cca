package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"Brnd/internal/core/auth"
)

// SessionRepository implements auth.SessionRepo backed by Postgres.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session record.
func (r *SessionRepository) Create(ctx context.Context, s *auth.Session) error {
	query := `
		INSERT INTO sessions (id, fid, backend_token, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, s.ID, s.FID, s.BackendToken, s.CreatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by its id.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*auth.Session, error) {
	query := `
		SELECT id, fid, backend_token, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`
	var s auth.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.FID, &s.BackendToken, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &s, nil
}

// Delete removes a session record.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session past its expiry. Run periodically.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
