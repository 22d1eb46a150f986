package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// Create adds a new weekly event. Admin only.
func (s *Service) Create(ctx context.Context, viewer domain.Viewer, input EventInput) (*domain.Event, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("create event: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.events.Create(ctx, &domain.Event{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Day:         domain.DayOfWeek(input.Day),
		TimeOfDay:   input.TimeOfDay,
		CreatedBy:   viewer.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("event created", "event_id", created.ID, "by", viewer.UserID)
	return created, nil
}

// Update rewrites an event's fields. Admin only.
func (s *Service) Update(ctx context.Context, viewer domain.Viewer, id uuid.UUID, input EventInput) (*domain.Event, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("update event: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.events.Update(ctx, &domain.Event{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Day:         domain.DayOfWeek(input.Day),
		TimeOfDay:   input.TimeOfDay,
	})
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	return updated, nil
}

// Delete removes an event and all its responses. Admin only.
func (s *Service) Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("delete event: %w", domain.ErrForbidden)
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info("event deleted", "event_id", id, "by", viewer.UserID)
	return nil
}

// Respond records the viewer's answer to an event, overwriting any previous
// answer.
func (s *Service) Respond(ctx context.Context, viewer domain.Viewer, eventID uuid.UUID, input RespondInput) (*domain.EventResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.events.UpsertResponse(ctx, &domain.EventResponse{
		UserID:   viewer.UserID,
		EventID:  eventID,
		Response: domain.ResponseType(input.Response),
	})
	if err != nil {
		return nil, fmt.Errorf("respond to event: %w", err)
	}

	return resp, nil
}
