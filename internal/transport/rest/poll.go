package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/service/poll"
)

// pollService defines the minimal interface needed by PollHandler.
type pollService interface {
	List(ctx context.Context, viewer domain.Viewer) ([]poll.View, error)
	CreateRegular(ctx context.Context, viewer domain.Viewer, input poll.CreateInput) (*domain.Poll, error)
	CreateTime(ctx context.Context, viewer domain.Viewer, input poll.CreateTimeInput) (*domain.Poll, []domain.TimeSlot, error)
	Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error
	Vote(ctx context.Context, viewer domain.Viewer, pollID uuid.UUID, vote bool) (*domain.PollVote, error)
	RespondToSlots(ctx context.Context, viewer domain.Viewer, pollID uuid.UUID, responses []poll.SlotResponseInput) error
}

// PollHandler serves poll endpoints, both yes/no polls and time polls.
type PollHandler struct {
	svc pollService
	log *slog.Logger
}

// NewPollHandler creates a PollHandler.
func NewPollHandler(svc pollService, logger *slog.Logger) *PollHandler {
	return &PollHandler{svc: svc, log: logger.With("handler", "poll")}
}

type createPollRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type createTimePollRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Slots       []slotRequest `json:"slots"`
}

type slotRequest struct {
	Day       string `json:"day"`
	TimeOfDay string `json:"timeOfDay"`
}

type voteRequest struct {
	Vote bool `json:"vote"`
}

type slotResponsesRequest struct {
	Responses []slotResponseRequest `json:"responses"`
}

type slotResponseRequest struct {
	SlotID    string `json:"slotId"`
	Available bool   `json:"available"`
}

type pollResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type slotViewResponse struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	TimeOfDay string `json:"timeOfDay"`
	LocalDay  string `json:"localDay"`
	LocalTime string `json:"localTime"`
}

type matrixRowResponse struct {
	UserID    string `json:"userId"`
	Nickname  string `json:"nickname"`
	Available []bool `json:"available"`
}

// pollViewResponse is one poll resolved for the viewer. Regular polls
// carry tallies; time polls carry localized slots and the availability
// matrix, rows sorted by nickname and columns in authoring order.
type pollViewResponse struct {
	pollResponse
	Yes        []string            `json:"yes,omitempty"`
	No         []string            `json:"no,omitempty"`
	ViewerVote *bool               `json:"viewerVote,omitempty"`
	Slots      []slotViewResponse  `json:"slots,omitempty"`
	Matrix     []matrixRowResponse `json:"matrix,omitempty"`
}

// List handles GET /polls.
func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	views, err := h.svc.List(r.Context(), viewer)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]pollViewResponse, len(views))
	for i, v := range views {
		out[i] = toPollViewResponse(v)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /polls: a yes/no poll. Admin only.
func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req createPollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.CreateRegular(r.Context(), viewer, poll.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPollResponse(*created))
}

// CreateTime handles POST /polls/time: a poll whose options are weekly
// time slots. Admin only.
func (h *PollHandler) CreateTime(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req createTimePollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := poll.CreateTimeInput{
		Title:       req.Title,
		Description: req.Description,
		Slots:       make([]poll.SlotInput, len(req.Slots)),
	}
	for i, s := range req.Slots {
		input.Slots[i] = poll.SlotInput{Day: s.Day, TimeOfDay: s.TimeOfDay}
	}

	created, slots, err := h.svc.CreateTime(r.Context(), viewer, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := pollViewResponse{pollResponse: toPollResponse(*created)}
	resp.Slots = make([]slotViewResponse, len(slots))
	for i, s := range slots {
		resp.Slots[i] = slotViewResponse{
			ID:        s.ID.String(),
			Day:       string(s.Day),
			TimeOfDay: s.TimeOfDay,
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Delete handles DELETE /polls/{id}. Admin only; slots, votes and slot
// responses go with the poll.
func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Vote handles PUT /polls/{id}/vote on a yes/no poll. A repeat vote
// overwrites the previous one.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req voteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vote, err := h.svc.Vote(r.Context(), viewer, id, req.Vote)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"pollId": vote.PollID.String(),
		"vote":   vote.Vote,
	})
}

// RespondToSlots handles PUT /polls/{id}/slots: a batch of availability
// answers for a time poll, applied atomically.
func (h *PollHandler) RespondToSlots(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req slotResponsesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	responses := make([]poll.SlotResponseInput, len(req.Responses))
	for i, sr := range req.Responses {
		slotID, err := uuid.Parse(sr.SlotID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid slot id")
			return
		}
		responses[i] = poll.SlotResponseInput{SlotID: slotID, Available: sr.Available}
	}

	if err := h.svc.RespondToSlots(r.Context(), viewer, id, responses); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toPollResponse(p domain.Poll) pollResponse {
	return pollResponse{
		ID:          p.ID.String(),
		Type:        string(p.Type),
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func toPollViewResponse(v poll.View) pollViewResponse {
	out := pollViewResponse{
		pollResponse: toPollResponse(v.Poll),
		Yes:          v.Yes,
		No:           v.No,
		ViewerVote:   v.ViewerVote,
	}

	if v.Poll.Type != domain.PollTypeTime {
		return out
	}

	out.Slots = make([]slotViewResponse, len(v.Slots))
	for i, s := range v.Slots {
		out.Slots[i] = slotViewResponse{
			ID:        s.Slot.ID.String(),
			Day:       string(s.Slot.Day),
			TimeOfDay: s.Slot.TimeOfDay,
			LocalDay:  string(s.LocalDay),
			LocalTime: s.LocalTime,
		}
	}

	out.Matrix = make([]matrixRowResponse, len(v.Matrix.Rows))
	for i, row := range v.Matrix.Rows {
		out.Matrix[i] = matrixRowResponse{
			UserID:    row.UserID.String(),
			Nickname:  row.Nickname,
			Available: row.Available,
		}
	}

	return out
}
