package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/schedule"
)

// View is one event as the viewer sees it: the stored reference time plus
// the same moment in the viewer's zone, with the day recomputed when the
// conversion crosses midnight.
type View struct {
	Event          domain.Event
	LocalDay       domain.DayOfWeek
	LocalTime      string
	Accepted       []string
	Declined       []string
	ViewerResponse *domain.ResponseType
}

// List returns all events localized to the viewer's zone, each with accepted
// and declined nicknames and the viewer's own response.
func (s *Service) List(ctx context.Context, viewer domain.Viewer) ([]View, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}

	responders, err := s.events.ListResponders(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	accepted := make(map[uuid.UUID][]string)
	declined := make(map[uuid.UUID][]string)
	viewerResp := make(map[uuid.UUID]domain.ResponseType)
	for _, r := range responders {
		switch r.Response {
		case domain.ResponseAccepted:
			accepted[r.EventID] = append(accepted[r.EventID], r.Nickname)
		case domain.ResponseDeclined:
			declined[r.EventID] = append(declined[r.EventID], r.Nickname)
		}
		if r.UserID == viewer.UserID {
			viewerResp[r.EventID] = r.Response
		}
	}

	views := make([]View, 0, len(events))
	for _, e := range events {
		local, err := schedule.Localize(schedule.WeeklyTimePoint{
			Day:           e.Day,
			TimeOfDay:     e.TimeOfDay,
			ReferenceZone: s.refZone,
		}, viewer.Timezone)
		if err != nil {
			return nil, fmt.Errorf("localize event %s: %w", e.ID, err)
		}

		view := View{
			Event:     e,
			LocalDay:  local.Day,
			LocalTime: local.TimeOfDay,
			Accepted:  accepted[e.ID],
			Declined:  declined[e.ID],
		}
		if resp, ok := viewerResp[e.ID]; ok {
			r := resp
			view.ViewerResponse = &r
		}
		views = append(views, view)
	}

	return views, nil
}
