// Package announcement implements the Announcement repository using
// PostgreSQL. Listing is built with squirrel since the filters (search text,
// paging) are optional and compose badly as static SQL.
package announcement

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/alliancehub/backend/internal/adapter/postgres"
	"github.com/alliancehub/backend/internal/domain"
)

// Repo provides announcement persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new announcement repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListFilter narrows the announcement listing. Zero values mean "no filter";
// a zero Limit returns everything.
type ListFilter struct {
	Search string
	Limit  uint64
	Offset uint64
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const announcementColumns = `id, title, content, created_by, created_at, updated_at`

const createSQL = `
INSERT INTO announcements (id, title, content, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)
RETURNING ` + announcementColumns

const getByIDSQL = `
SELECT ` + announcementColumns + `
FROM announcements
WHERE id = $1`

const updateSQL = `
UPDATE announcements
SET title = $2, content = $3, updated_at = now()
WHERE id = $1
RETURNING ` + announcementColumns

const deleteSQL = `
DELETE FROM announcements WHERE id = $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new announcement and returns the persisted row.
func (r *Repo) Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL, a.ID, a.Title, a.Content, a.CreatedBy, now)

	created, err := scanAnnouncement(row)
	if err != nil {
		return nil, postgres.MapError(err, "announcement", a.ID)
	}

	return created, nil
}

// GetByID returns an announcement by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAnnouncement(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "announcement", id)
	}

	return a, nil
}

// List returns announcements newest first, narrowed by the filter.
func (r *Repo) List(ctx context.Context, filter ListFilter) ([]domain.Announcement, error) {
	builder := squirrel.Select(announcementColumns).
		From("announcements").
		OrderBy("created_at DESC, id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Search != "" {
		builder = builder.Where(squirrel.ILike{"title": "%" + filter.Search + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit).Offset(filter.Offset)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build announcements query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("list announcements: %w", err)
		}
		announcements = append(announcements, *a)
	}

	return announcements, rows.Err()
}

// Update rewrites title and content.
// Returns domain.ErrNotFound if the announcement does not exist.
func (r *Repo) Update(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	updated, err := scanAnnouncement(querier.QueryRow(ctx, updateSQL, a.ID, a.Title, a.Content))
	if err != nil {
		return nil, postgres.MapError(err, "announcement", a.ID)
	}

	return updated, nil
}

// Delete removes an announcement.
// Returns domain.ErrNotFound if the announcement does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "announcement", id)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("announcement %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanAnnouncement(row pgx.Row) (*domain.Announcement, error) {
	var a domain.Announcement

	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &a, nil
}
