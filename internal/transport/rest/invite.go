package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/service/invite"
)

// inviteService defines the minimal interface needed by InviteHandler.
type inviteService interface {
	Create(ctx context.Context, viewer domain.Viewer, input invite.CreateInput) (*domain.InvitationToken, error)
	List(ctx context.Context, viewer domain.Viewer) ([]domain.InvitationToken, error)
}

// InviteHandler serves invitation token endpoints. Admin only.
type InviteHandler struct {
	svc inviteService
	log *slog.Logger
}

// NewInviteHandler creates an InviteHandler.
func NewInviteHandler(svc inviteService, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{svc: svc, log: logger.With("handler", "invite")}
}

type createInviteRequest struct {
	AdminNickname string `json:"adminNickname"`
}

type inviteResponse struct {
	Token          string    `json:"token"`
	AdminNickname  string    `json:"adminNickname"`
	CreatedBy      string    `json:"createdBy"`
	ExpiresAt      time.Time `json:"expiresAt"`
	Used           bool      `json:"used"`
	UsedBy         *string   `json:"usedBy,omitempty"`
	UsedByNickname *string   `json:"usedByNickname,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Create handles POST /invites: mints a single-use signup token.
func (h *InviteHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req createInviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), viewer, invite.CreateInput{
		AdminNickname: req.AdminNickname,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInviteResponse(*created))
}

// List handles GET /invites.
func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	tokens, err := h.svc.List(r.Context(), viewer)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]inviteResponse, len(tokens))
	for i, t := range tokens {
		out[i] = toInviteResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func toInviteResponse(t domain.InvitationToken) inviteResponse {
	out := inviteResponse{
		Token:         t.Token.String(),
		AdminNickname: t.AdminNickname,
		CreatedBy:     t.CreatedBy.String(),
		ExpiresAt:     t.ExpiresAt,
		Used:          t.Used,
		CreatedAt:     t.CreatedAt,
	}
	if t.UsedBy != nil {
		s := t.UsedBy.String()
		out.UsedBy = &s
	}
	out.UsedByNickname = t.UsedByNickname
	return out
}
