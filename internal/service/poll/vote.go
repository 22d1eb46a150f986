package poll

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// Vote records the viewer's yes/no answer to a REGULAR poll, overwriting any
// previous answer. Voting on a TIME poll is a validation error; its slots
// are answered through RespondToSlots.
func (s *Service) Vote(ctx context.Context, viewer domain.Viewer, pollID uuid.UUID, vote bool) (*domain.PollVote, error) {
	p, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}
	if p.Type != domain.PollTypeRegular {
		return nil, domain.NewValidationError("poll_id", "time polls take slot responses, not votes")
	}

	v, err := s.polls.UpsertVote(ctx, &domain.PollVote{
		UserID: viewer.UserID,
		PollID: pollID,
		Vote:   vote,
	})
	if err != nil {
		return nil, fmt.Errorf("vote: %w", err)
	}

	return v, nil
}

// RespondToSlots records the viewer's availability for several slots of one
// TIME poll in a single transaction: either the whole batch lands or none of
// it. Every slot must belong to the given poll.
func (s *Service) RespondToSlots(ctx context.Context, viewer domain.Viewer, pollID uuid.UUID, responses []SlotResponseInput) error {
	if err := ValidateSlotResponses(responses); err != nil {
		return err
	}

	p, err := s.polls.GetByID(ctx, pollID)
	if err != nil {
		return fmt.Errorf("respond to slots: %w", err)
	}
	if p.Type != domain.PollTypeTime {
		return domain.NewValidationError("poll_id", "not a time poll")
	}

	slots, err := s.polls.ListSlots(ctx, []uuid.UUID{pollID})
	if err != nil {
		return fmt.Errorf("respond to slots: %w", err)
	}
	known := make(map[uuid.UUID]bool, len(slots))
	for _, slot := range slots {
		known[slot.ID] = true
	}
	for _, r := range responses {
		if !known[r.SlotID] {
			return domain.NewValidationError("slot_id", "slot does not belong to this poll")
		}
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, r := range responses {
			if err := s.polls.UpsertSlotResponse(ctx, &domain.TimeSlotResponse{
				UserID:     viewer.UserID,
				TimeSlotID: r.SlotID,
				Available:  r.Available,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("respond to slots: %w", err)
	}

	return nil
}
