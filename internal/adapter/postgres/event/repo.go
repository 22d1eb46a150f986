// Package event implements the Event repository using PostgreSQL.
package event

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

// Repo provides event and event-response persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const eventColumns = `id, title, description, day_of_week, time_of_day, created_by, created_at, updated_at`

const createSQL = `
INSERT INTO events (id, title, description, day_of_week, time_of_day, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + eventColumns

const getByIDSQL = `
SELECT ` + eventColumns + `
FROM events
WHERE id = $1`

const listSQL = `
SELECT ` + eventColumns + `
FROM events
ORDER BY created_at, id`

const updateSQL = `
UPDATE events
SET title = $2, description = $3, day_of_week = $4, time_of_day = $5, updated_at = now()
WHERE id = $1
RETURNING ` + eventColumns

const deleteSQL = `
DELETE FROM events WHERE id = $1`

const upsertResponseSQL = `
INSERT INTO event_responses (user_id, event_id, response, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, event_id)
DO UPDATE SET response = EXCLUDED.response, updated_at = now()
RETURNING user_id, event_id, response, updated_at`

const listRespondersSQL = `
SELECT er.event_id, er.user_id, u.nickname, er.response
FROM event_responses er
JOIN users u ON u.id = er.user_id
WHERE er.event_id = ANY ($1)
ORDER BY u.nickname, u.id`

// ---------------------------------------------------------------------------
// Event operations
// ---------------------------------------------------------------------------

// Create inserts a new event and returns the persisted domain.Event.
func (r *Repo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		e.ID,
		e.Title,
		e.Description,
		string(e.Day),
		e.TimeOfDay,
		e.CreatedBy,
		now,
	)

	created, err := scanEvent(row)
	if err != nil {
		return nil, postgres.MapError(err, "event", e.ID)
	}

	return created, nil
}

// GetByID returns an event by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEvent(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "event", id)
	}

	return e, nil
}

// List returns all events in creation order.
func (r *Repo) List(ctx context.Context) ([]domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		events = append(events, *e)
	}

	return events, rows.Err()
}

// Update rewrites the mutable fields of an event.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		e.ID,
		e.Title,
		e.Description,
		string(e.Day),
		e.TimeOfDay,
	)

	updated, err := scanEvent(row)
	if err != nil {
		return nil, postgres.MapError(err, "event", e.ID)
	}

	return updated, nil
}

// Delete removes an event; responses go with it via ON DELETE CASCADE.
// Returns domain.ErrNotFound if the event does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "event", id)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Response operations
// ---------------------------------------------------------------------------

// UpsertResponse records a member's answer, overwriting any previous one.
// The (user_id, event_id) primary key guarantees at most one row per pair.
func (r *Repo) UpsertResponse(ctx context.Context, resp *domain.EventResponse) (*domain.EventResponse, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, upsertResponseSQL,
		resp.UserID,
		resp.EventID,
		string(resp.Response),
	)

	var (
		out      domain.EventResponse
		response string
	)
	if err := row.Scan(&out.UserID, &out.EventID, &response, &out.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "event_response", resp.EventID)
	}

	out.Response = domain.ResponseType(response)
	return &out, nil
}

// ListResponders returns all responses for the given events joined with the
// responder's nickname, ordered by nickname (id breaks ties).
func (r *Repo) ListResponders(ctx context.Context, eventIDs []uuid.UUID) ([]domain.EventResponder, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRespondersSQL, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("list event responders: %w", err)
	}
	defer rows.Close()

	var responders []domain.EventResponder
	for rows.Next() {
		var (
			rr       domain.EventResponder
			response string
		)
		if err := rows.Scan(&rr.EventID, &rr.UserID, &rr.Nickname, &response); err != nil {
			return nil, fmt.Errorf("list event responders: %w", err)
		}
		rr.Response = domain.ResponseType(response)
		responders = append(responders, rr)
	}

	return responders, rows.Err()
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		e   domain.Event
		day string
	)

	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&day,
		&e.TimeOfDay,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Day = domain.DayOfWeek(day)
	return &e, nil
}
