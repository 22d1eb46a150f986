// Package event implements the weekly event use cases: admin CRUD, member
// responses and the per-viewer localized listing.
package event

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type eventRepo interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertResponse(ctx context.Context, resp *domain.EventResponse) (*domain.EventResponse, error)
	ListResponders(ctx context.Context, eventIDs []uuid.UUID) ([]domain.EventResponder, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the event business logic. All stored times are in the
// reference zone; listings localize them to the viewer's zone.
type Service struct {
	events  eventRepo
	log     *slog.Logger
	refZone string
}

// NewService creates a new event service. refZone is the IANA zone events
// are authored in.
func NewService(log *slog.Logger, events eventRepo, refZone string) *Service {
	return &Service{
		events:  events,
		log:     log,
		refZone: refZone,
	}
}
