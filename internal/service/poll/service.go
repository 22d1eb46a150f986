// Package poll implements poll use cases: admin-created yes/no polls and
// time polls, member votes, batch slot responses and the per-viewer listing
// with the availability matrix.
package poll

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type pollRepo interface {
	Create(ctx context.Context, p *domain.Poll) (*domain.Poll, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	List(ctx context.Context) ([]domain.Poll, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertVote(ctx context.Context, v *domain.PollVote) (*domain.PollVote, error)
	ListVoters(ctx context.Context, pollIDs []uuid.UUID) ([]domain.PollVoter, error)
	CreateSlots(ctx context.Context, slots []domain.TimeSlot) error
	GetSlot(ctx context.Context, id uuid.UUID) (*domain.TimeSlot, error)
	ListSlots(ctx context.Context, pollIDs []uuid.UUID) ([]domain.TimeSlot, error)
	UpsertSlotResponse(ctx context.Context, resp *domain.TimeSlotResponse) error
	ListSlotResponders(ctx context.Context, pollIDs []uuid.UUID) ([]domain.SlotResponder, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the poll business logic.
type Service struct {
	polls   pollRepo
	tx      txManager
	log     *slog.Logger
	refZone string
}

// NewService creates a new poll service. refZone is the IANA zone slot times
// are authored in.
func NewService(log *slog.Logger, polls pollRepo, tx txManager, refZone string) *Service {
	return &Service{
		polls:   polls,
		tx:      tx,
		log:     log,
		refZone: refZone,
	}
}
