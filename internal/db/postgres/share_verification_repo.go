package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Brnd/internal/core/voting"
)

// maxVerifyAttempts caps retries for a single share verification; beyond
// this the entry stops being picked up and the share points stay pending
// on the backend's side.
const maxVerifyAttempts = 10

// ShareVerificationRepository implements voting.OutboxRepo backed by
// Postgres. Entries are at-least-once: the backend treats re-verification
// of an already-verified share as a no-op.
type ShareVerificationRepository struct {
	db *sql.DB
}

// NewShareVerificationRepository creates a new outbox repository.
func NewShareVerificationRepository(db *sql.DB) *ShareVerificationRepository {
	return &ShareVerificationRepository{db: db}
}

// Enqueue inserts a pending verification and fills in its id.
func (r *ShareVerificationRepository) Enqueue(ctx context.Context, v *voting.PendingVerification) error {
	query := `
		INSERT INTO share_verifications (fid, vote_id, cast_hash, backend_token)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, v.FID, v.VoteID, v.CastHash, v.Token).Scan(&v.ID); err != nil {
		return fmt.Errorf("failed to enqueue share verification: %w", err)
	}
	return nil
}

// ListPending returns unverified entries oldest first.
func (r *ShareVerificationRepository) ListPending(ctx context.Context, limit int) ([]*voting.PendingVerification, error) {
	query := `
		SELECT id, fid, vote_id, cast_hash, backend_token, attempts
		FROM share_verifications
		WHERE verified_at IS NULL AND attempts < $2
		ORDER BY created_at ASC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit, maxVerifyAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending verifications: %w", err)
	}
	defer rows.Close()

	var pending []*voting.PendingVerification
	for rows.Next() {
		var v voting.PendingVerification
		if err := rows.Scan(&v.ID, &v.FID, &v.VoteID, &v.CastHash, &v.Token, &v.Attempts); err != nil {
			return nil, fmt.Errorf("failed to scan verification row: %w", err)
		}
		pending = append(pending, &v)
	}
	return pending, rows.Err()
}

// MarkVerified stamps the entry as confirmed.
func (r *ShareVerificationRepository) MarkVerified(ctx context.Context, id int64) error {
	query := `UPDATE share_verifications SET verified_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to mark verification done: %w", err)
	}
	return nil
}

// RecordAttempt bumps the attempt counter and stores the failure reason.
func (r *ShareVerificationRepository) RecordAttempt(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE share_verifications
		SET attempts = attempts + 1, last_error = $2, last_attempt_at = NOW()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, reason); err != nil {
		return fmt.Errorf("failed to record verification attempt: %w", err)
	}
	return nil
}
