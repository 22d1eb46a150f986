// Package poll implements the Poll repository using PostgreSQL: polls of both
// kinds, yes/no votes, time slots and per-slot availability responses.
package poll

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

// Repo provides poll persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new poll repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const pollColumns = `id, type, title, description, created_by, created_at`

const createSQL = `
INSERT INTO polls (id, type, title, description, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + pollColumns

const getByIDSQL = `
SELECT ` + pollColumns + `
FROM polls
WHERE id = $1`

const listSQL = `
SELECT ` + pollColumns + `
FROM polls
ORDER BY created_at DESC, id`

const deleteSQL = `
DELETE FROM polls WHERE id = $1`

const upsertVoteSQL = `
INSERT INTO poll_votes (user_id, poll_id, vote, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, poll_id)
DO UPDATE SET vote = EXCLUDED.vote, updated_at = now()
RETURNING user_id, poll_id, vote, updated_at`

const listVotersSQL = `
SELECT pv.poll_id, pv.user_id, u.nickname, pv.vote
FROM poll_votes pv
JOIN users u ON u.id = pv.user_id
WHERE pv.poll_id = ANY ($1)
ORDER BY u.nickname, u.id`

const createSlotSQL = `
INSERT INTO time_slots (id, poll_id, day_of_week, time_of_day, position)
VALUES ($1, $2, $3, $4, $5)`

const slotColumns = `id, poll_id, day_of_week, time_of_day, position`

const getSlotSQL = `
SELECT ` + slotColumns + `
FROM time_slots
WHERE id = $1`

const listSlotsSQL = `
SELECT ` + slotColumns + `
FROM time_slots
WHERE poll_id = ANY ($1)
ORDER BY poll_id, position`

const upsertSlotResponseSQL = `
INSERT INTO time_slot_responses (user_id, time_slot_id, available, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, time_slot_id)
DO UPDATE SET available = EXCLUDED.available, updated_at = now()`

const listSlotRespondersSQL = `
SELECT tsr.time_slot_id, tsr.user_id, u.nickname, tsr.available
FROM time_slot_responses tsr
JOIN time_slots ts ON ts.id = tsr.time_slot_id
JOIN users u ON u.id = tsr.user_id
WHERE ts.poll_id = ANY ($1)
ORDER BY u.nickname, u.id`

// ---------------------------------------------------------------------------
// Poll operations
// ---------------------------------------------------------------------------

// Create inserts a new poll and returns the persisted domain.Poll.
func (r *Repo) Create(ctx context.Context, p *domain.Poll) (*domain.Poll, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		p.ID,
		string(p.Type),
		p.Title,
		p.Description,
		p.CreatedBy,
		now,
	)

	created, err := scanPoll(row)
	if err != nil {
		return nil, postgres.MapError(err, "poll", p.ID)
	}

	return created, nil
}

// GetByID returns a poll by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPoll(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "poll", id)
	}

	return p, nil
}

// List returns all polls, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Poll, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	defer rows.Close()

	var polls []domain.Poll
	for rows.Next() {
		p, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("list polls: %w", err)
		}
		polls = append(polls, *p)
	}

	return polls, rows.Err()
}

// Delete removes a poll; slots, votes and slot responses cascade.
// Returns domain.ErrNotFound if the poll does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "poll", id)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("poll %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Vote operations
// ---------------------------------------------------------------------------

// UpsertVote records a member's yes/no vote, overwriting any previous one.
func (r *Repo) UpsertVote(ctx context.Context, v *domain.PollVote) (*domain.PollVote, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, upsertVoteSQL, v.UserID, v.PollID, v.Vote)

	var out domain.PollVote
	if err := row.Scan(&out.UserID, &out.PollID, &out.Vote, &out.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "poll_vote", v.PollID)
	}

	return &out, nil
}

// ListVoters returns all votes for the given polls joined with the voter's
// nickname, ordered by nickname (id breaks ties).
func (r *Repo) ListVoters(ctx context.Context, pollIDs []uuid.UUID) ([]domain.PollVoter, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listVotersSQL, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("list poll voters: %w", err)
	}
	defer rows.Close()

	var voters []domain.PollVoter
	for rows.Next() {
		var v domain.PollVoter
		if err := rows.Scan(&v.PollID, &v.UserID, &v.Nickname, &v.Vote); err != nil {
			return nil, fmt.Errorf("list poll voters: %w", err)
		}
		voters = append(voters, v)
	}

	return voters, rows.Err()
}

// ---------------------------------------------------------------------------
// Slot operations
// ---------------------------------------------------------------------------

// CreateSlots inserts the slots of a TIME poll in one batch. Position is
// taken from the slot structs; callers assign it in authoring order.
func (r *Repo) CreateSlots(ctx context.Context, slots []domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(createSlotSQL, s.ID, s.PollID, string(s.Day), s.TimeOfDay, s.Position)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for _, s := range slots {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "time_slot", s.ID)
		}
	}

	return nil
}

// GetSlot returns a slot by primary key.
func (r *Repo) GetSlot(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanSlot(querier.QueryRow(ctx, getSlotSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "time_slot", id)
	}

	return s, nil
}

// ListSlots returns all slots of the given polls in authoring order.
func (r *Repo) ListSlots(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSlotsSQL, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.TimeSlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("list time slots: %w", err)
		}
		slots = append(slots, *s)
	}

	return slots, rows.Err()
}

// ---------------------------------------------------------------------------
// Slot response operations
// ---------------------------------------------------------------------------

// UpsertSlotResponse records a member's availability for one slot,
// overwriting any previous answer for the same (user, slot) pair.
func (r *Repo) UpsertSlotResponse(ctx context.Context, resp *domain.TimeSlotResponse) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, upsertSlotResponseSQL,
		resp.UserID,
		resp.TimeSlotID,
		resp.Available,
	); err != nil {
		return postgres.MapError(err, "time_slot_response", resp.TimeSlotID)
	}

	return nil
}

// ListSlotResponders returns every slot response for the given polls joined
// with the responder's nickname.
func (r *Repo) ListSlotResponders(ctx context.Context, pollIDs []uuid.UUID) ([]domain.SlotResponder, error) {
	if len(pollIDs) == 0 {
		return nil, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSlotRespondersSQL, pollIDs)
	if err != nil {
		return nil, fmt.Errorf("list slot responders: %w", err)
	}
	defer rows.Close()

	var responders []domain.SlotResponder
	for rows.Next() {
		var sr domain.SlotResponder
		if err := rows.Scan(&sr.TimeSlotID, &sr.UserID, &sr.Nickname, &sr.Available); err != nil {
			return nil, fmt.Errorf("list slot responders: %w", err)
		}
		responders = append(responders, sr)
	}

	return responders, rows.Err()
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanPoll(row pgx.Row) (*domain.Poll, error) {
	var (
		p        domain.Poll
		pollType string
	)

	if err := row.Scan(
		&p.ID,
		&pollType,
		&p.Title,
		&p.Description,
		&p.CreatedBy,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Type = domain.PollType(pollType)
	return &p, nil
}

func scanSlot(row pgx.Row) (*domain.TimeSlot, error) {
	var (
		s   domain.TimeSlot
		day string
	)

	if err := row.Scan(
		&s.ID,
		&s.PollID,
		&day,
		&s.TimeOfDay,
		&s.Position,
	); err != nil {
		return nil, err
	}

	s.Day = domain.DayOfWeek(day)
	return &s, nil
}
