package poll

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// CreateRegular adds a yes/no poll. Admin only.
func (s *Service) CreateRegular(ctx context.Context, viewer domain.Viewer, input CreateInput) (*domain.Poll, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("create poll: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.polls.Create(ctx, &domain.Poll{
		ID:          uuid.New(),
		Type:        domain.PollTypeRegular,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   viewer.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create poll: %w", err)
	}

	s.log.Info("poll created", "poll_id", created.ID, "type", created.Type, "by", viewer.UserID)
	return created, nil
}

// CreateTime adds a TIME poll with its slots. The slots get positions in
// input order and keep that order forever. Poll and slots are created in one
// transaction. Admin only.
func (s *Service) CreateTime(ctx context.Context, viewer domain.Viewer, input CreateTimeInput) (*domain.Poll, []domain.TimeSlot, error) {
	if !viewer.IsAdmin() {
		return nil, nil, fmt.Errorf("create time poll: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, nil, err
	}

	pollID := uuid.New()
	slots := make([]domain.TimeSlot, len(input.Slots))
	for i, in := range input.Slots {
		slots[i] = domain.TimeSlot{
			ID:        uuid.New(),
			PollID:    pollID,
			Day:       domain.DayOfWeek(in.Day),
			TimeOfDay: in.TimeOfDay,
			Position:  i,
		}
	}

	var created *domain.Poll
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.polls.Create(ctx, &domain.Poll{
			ID:          pollID,
			Type:        domain.PollTypeTime,
			Title:       input.Title,
			Description: input.Description,
			CreatedBy:   viewer.UserID,
		})
		if err != nil {
			return err
		}

		return s.polls.CreateSlots(ctx, slots)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create time poll: %w", err)
	}

	s.log.Info("time poll created", "poll_id", created.ID, "slots", len(slots), "by", viewer.UserID)
	return created, slots, nil
}

// Delete removes a poll with everything attached to it. Admin only.
func (s *Service) Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("delete poll: %w", domain.ErrForbidden)
	}

	if err := s.polls.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete poll: %w", err)
	}

	s.log.Info("poll deleted", "poll_id", id, "by", viewer.UserID)
	return nil
}
