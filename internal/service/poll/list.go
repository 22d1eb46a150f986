package poll

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/schedule"
)

// LocalSlot is one time-poll column as the viewer sees it: the stored slot
// plus the localized day and time.
type LocalSlot struct {
	Slot      domain.TimeSlot
	LocalDay  domain.DayOfWeek
	LocalTime string
}

// View is one poll as the viewer sees it. Regular polls carry tallies and
// the viewer's vote; time polls carry localized slots and the availability
// matrix.
type View struct {
	Poll domain.Poll

	// REGULAR polls
	Yes        []string
	No         []string
	ViewerVote *bool

	// TIME polls
	Slots  []LocalSlot
	Matrix schedule.AvailabilityMatrix
}

// List returns all polls, newest first, fully resolved for the viewer.
func (s *Service) List(ctx context.Context, viewer domain.Viewer) ([]View, error) {
	polls, err := s.polls.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}
	if len(polls) == 0 {
		return nil, nil
	}

	regularIDs := make([]uuid.UUID, 0, len(polls))
	timeIDs := make([]uuid.UUID, 0, len(polls))
	for _, p := range polls {
		switch p.Type {
		case domain.PollTypeTime:
			timeIDs = append(timeIDs, p.ID)
		default:
			regularIDs = append(regularIDs, p.ID)
		}
	}

	voters, err := s.polls.ListVoters(ctx, regularIDs)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}

	slots, err := s.polls.ListSlots(ctx, timeIDs)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}

	responders, err := s.polls.ListSlotResponders(ctx, timeIDs)
	if err != nil {
		return nil, fmt.Errorf("list polls: %w", err)
	}

	yes := make(map[uuid.UUID][]string)
	no := make(map[uuid.UUID][]string)
	viewerVote := make(map[uuid.UUID]bool)
	for _, v := range voters {
		if v.Vote {
			yes[v.PollID] = append(yes[v.PollID], v.Nickname)
		} else {
			no[v.PollID] = append(no[v.PollID], v.Nickname)
		}
		if v.UserID == viewer.UserID {
			viewerVote[v.PollID] = v.Vote
		}
	}

	slotsByPoll := make(map[uuid.UUID][]domain.TimeSlot)
	slotPoll := make(map[uuid.UUID]uuid.UUID, len(slots))
	for _, slot := range slots {
		slotsByPoll[slot.PollID] = append(slotsByPoll[slot.PollID], slot)
		slotPoll[slot.ID] = slot.PollID
	}

	responsesByPoll := make(map[uuid.UUID][]schedule.SlotResponse)
	for _, r := range responders {
		pollID, ok := slotPoll[r.TimeSlotID]
		if !ok {
			continue
		}
		responsesByPoll[pollID] = append(responsesByPoll[pollID], schedule.SlotResponse{
			UserID:    r.UserID,
			Nickname:  r.Nickname,
			SlotID:    r.TimeSlotID,
			Available: r.Available,
		})
	}

	views := make([]View, 0, len(polls))
	for _, p := range polls {
		view := View{Poll: p}

		switch p.Type {
		case domain.PollTypeTime:
			pollSlots := slotsByPoll[p.ID]

			cols := make([]schedule.Slot, len(pollSlots))
			locals := make([]LocalSlot, len(pollSlots))
			for i, slot := range pollSlots {
				point := schedule.WeeklyTimePoint{
					Day:           slot.Day,
					TimeOfDay:     slot.TimeOfDay,
					ReferenceZone: s.refZone,
				}
				cols[i] = schedule.Slot{ID: slot.ID, Point: point}

				local, err := schedule.Localize(point, viewer.Timezone)
				if err != nil {
					return nil, fmt.Errorf("localize slot %s: %w", slot.ID, err)
				}
				locals[i] = LocalSlot{Slot: slot, LocalDay: local.Day, LocalTime: local.TimeOfDay}
			}

			view.Slots = locals
			view.Matrix = schedule.BuildMatrix(cols, responsesByPoll[p.ID], schedule.Participant{
				UserID:   viewer.UserID,
				Nickname: viewer.Nickname,
			})

		default:
			view.Yes = yes[p.ID]
			view.No = no[p.ID]
			if vote, ok := viewerVote[p.ID]; ok {
				v := vote
				view.ViewerVote = &v
			}
		}

		views = append(views, view)
	}

	return views, nil
}
