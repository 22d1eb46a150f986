// Package invite implements the InvitationToken repository using PostgreSQL.
package invite

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

// Repo provides invitation token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invite repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const tokenColumns = `token, admin_nickname, created_by, expires_at, used, used_by, used_by_nickname, created_at`

const createSQL = `
INSERT INTO invitation_tokens (token, admin_nickname, created_by, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + tokenColumns

const getByTokenSQL = `
SELECT ` + tokenColumns + `
FROM invitation_tokens
WHERE token = $1`

const listSQL = `
SELECT ` + tokenColumns + `
FROM invitation_tokens
ORDER BY created_at DESC, token`

const markUsedSQL = `
UPDATE invitation_tokens
SET used = TRUE, used_by = $2, used_by_nickname = $3
WHERE token = $1 AND used = FALSE
RETURNING ` + tokenColumns

const deleteExpiredSQL = `
DELETE FROM invitation_tokens
WHERE used = FALSE AND expires_at < $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new invitation token.
func (r *Repo) Create(ctx context.Context, t *domain.InvitationToken) (*domain.InvitationToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		t.Token,
		t.AdminNickname,
		t.CreatedBy,
		t.ExpiresAt.UTC().Truncate(time.Microsecond),
		time.Now().UTC().Truncate(time.Microsecond),
	)

	created, err := scanToken(row)
	if err != nil {
		return nil, postgres.MapError(err, "invitation_token", t.Token)
	}

	return created, nil
}

// GetByToken returns the invitation for the given token value.
func (r *Repo) GetByToken(ctx context.Context, token uuid.UUID) (*domain.InvitationToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanToken(querier.QueryRow(ctx, getByTokenSQL, token))
	if err != nil {
		return nil, postgres.MapError(err, "invitation_token", token)
	}

	return t, nil
}

// List returns all invitations, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.InvitationToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list invitation tokens: %w", err)
	}
	defer rows.Close()

	var tokens []domain.InvitationToken
	for rows.Next() {
		t, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("list invitation tokens: %w", err)
		}
		tokens = append(tokens, *t)
	}

	return tokens, rows.Err()
}

// MarkUsed consumes a token for the given signup. The `used = FALSE` guard
// makes consumption race-safe: of two concurrent signups with the same token
// exactly one sees a row. Returns domain.ErrNotFound for a token that is
// missing or already used.
func (r *Repo) MarkUsed(ctx context.Context, token uuid.UUID, userID uuid.UUID, nickname string) (*domain.InvitationToken, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	t, err := scanToken(querier.QueryRow(ctx, markUsedSQL, token, userID, nickname))
	if err != nil {
		return nil, postgres.MapError(err, "invitation_token", token)
	}

	return t, nil
}

// DeleteExpired removes unused tokens that expired before now and returns
// the number of rows deleted. Used tokens are kept as an audit trail.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteExpiredSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired invitation tokens: %w", err)
	}

	return ct.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanToken(row pgx.Row) (*domain.InvitationToken, error) {
	var t domain.InvitationToken

	if err := row.Scan(
		&t.Token,
		&t.AdminNickname,
		&t.CreatedBy,
		&t.ExpiresAt,
		&t.Used,
		&t.UsedBy,
		&t.UsedByNickname,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &t, nil
}
