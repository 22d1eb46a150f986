// Package session implements the login session repository using PostgreSQL.
// Sessions are looked up by token hash, never by raw token.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/alliancehub/backend/internal/adapter/postgres"
	"github.com/alliancehub/backend/internal/domain"
)

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `id, user_id, token_hash, expires_at, created_at`

const createSQL = `
INSERT INTO sessions (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + sessionColumns

const getByTokenHashSQL = `
SELECT ` + sessionColumns + `
FROM sessions
WHERE token_hash = $1`

const extendSQL = `
UPDATE sessions
SET expires_at = $2
WHERE id = $1`

const deleteSQL = `
DELETE FROM sessions WHERE id = $1`

const deleteByUserIDSQL = `
DELETE FROM sessions WHERE user_id = $1`

const deleteExpiredSQL = `
DELETE FROM sessions WHERE expires_at < $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new session and returns the persisted domain.Session.
func (r *Repo) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		s.ID,
		s.UserID,
		s.TokenHash,
		s.ExpiresAt.UTC().Truncate(time.Microsecond),
		s.CreatedAt.UTC().Truncate(time.Microsecond),
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", s.ID)
	}

	return created, nil
}

// GetByTokenHash returns the session matching the given token hash.
// Returns domain.ErrNotFound if no such session exists; expiry is the
// caller's concern.
func (r *Repo) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSession(querier.QueryRow(ctx, getByTokenHashSQL, tokenHash))
	if err != nil {
		return nil, postgres.MapError(err, "session", uuid.Nil)
	}

	return s, nil
}

// Extend moves the session expiry forward. Used for sliding renewal.
func (r *Repo) Extend(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, extendSQL, id, expiresAt.UTC().Truncate(time.Microsecond))
	if err != nil {
		return postgres.MapError(err, "session", id)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a single session (logout).
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSQL, id); err != nil {
		return postgres.MapError(err, "session", id)
	}

	return nil
}

// DeleteByUserID removes all sessions for a user.
func (r *Repo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByUserIDSQL, userID); err != nil {
		return postgres.MapError(err, "session", userID)
	}

	return nil
}

// DeleteExpired removes sessions that expired before now and returns the
// number of rows deleted. Called by the cleanup job.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteExpiredSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	return ct.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session

	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.TokenHash,
		&s.ExpiresAt,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &s, nil
}
