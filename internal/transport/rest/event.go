package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/service/event"
)

// eventService defines the minimal interface needed by EventHandler.
type eventService interface {
	List(ctx context.Context, viewer domain.Viewer) ([]event.View, error)
	Create(ctx context.Context, viewer domain.Viewer, input event.EventInput) (*domain.Event, error)
	Update(ctx context.Context, viewer domain.Viewer, id uuid.UUID, input event.EventInput) (*domain.Event, error)
	Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error
	Respond(ctx context.Context, viewer domain.Viewer, eventID uuid.UUID, input event.RespondInput) (*domain.EventResponse, error)
}

// EventHandler serves recurring weekly event endpoints.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "event")}
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Day         string `json:"day"`
	TimeOfDay   string `json:"timeOfDay"`
}

type respondRequest struct {
	Response string `json:"response"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Day         string    `json:"day"`
	TimeOfDay   string    `json:"timeOfDay"`
	CreatedAt   time.Time `json:"createdAt"`
}

// eventViewResponse is an event plus everything the listing shows: the
// time localized to the viewer's zone and the response breakdown.
type eventViewResponse struct {
	eventResponse
	LocalDay       string   `json:"localDay"`
	LocalTime      string   `json:"localTime"`
	Accepted       []string `json:"accepted"`
	Declined       []string `json:"declined"`
	ViewerResponse *string  `json:"viewerResponse,omitempty"`
}

// List handles GET /events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	views, err := h.svc.List(r.Context(), viewer)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]eventViewResponse, len(views))
	for i, v := range views {
		out[i] = toEventViewResponse(v)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /events. Admin only.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), viewer, event.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Day:         req.Day,
		TimeOfDay:   req.TimeOfDay,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(*created))
}

// Update handles PUT /events/{id}. Admin only.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), viewer, id, event.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Day:         req.Day,
		TimeOfDay:   req.TimeOfDay,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(*updated))
}

// Delete handles DELETE /events/{id}. Admin only.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), viewer, id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Respond handles PUT /events/{id}/response. A repeat submission
// overwrites the previous answer.
func (h *EventHandler) Respond(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req respondRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.svc.Respond(r.Context(), viewer, id, event.RespondInput{Response: req.Response})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"eventId":  resp.EventID.String(),
		"response": string(resp.Response),
	})
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description,
		Day:         string(e.Day),
		TimeOfDay:   e.TimeOfDay,
		CreatedAt:   e.CreatedAt,
	}
}

func toEventViewResponse(v event.View) eventViewResponse {
	out := eventViewResponse{
		eventResponse: toEventResponse(v.Event),
		LocalDay:      string(v.LocalDay),
		LocalTime:     v.LocalTime,
		Accepted:      v.Accepted,
		Declined:      v.Declined,
	}
	if v.ViewerResponse != nil {
		s := string(*v.ViewerResponse)
		out.ViewerResponse = &s
	}
	if out.Accepted == nil {
		out.Accepted = []string{}
	}
	if out.Declined == nil {
		out.Declined = []string{}
	}
	return out
}
