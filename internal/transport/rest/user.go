package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/service/user"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	List(ctx context.Context) ([]user.Member, error)
	UpdateTimezone(ctx context.Context, viewer domain.Viewer, timezone string) (*domain.User, error)
}

// UserHandler serves the member roster and profile settings.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type memberResponse struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	Timezone string `json:"timezone"`
}

type updateTimezoneRequest struct {
	Timezone string `json:"timezone"`
}

// List handles GET /members: the roster, nicknames and zones only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]memberResponse, len(members))
	for i, m := range members {
		out[i] = memberResponse{
			ID:       m.ID.String(),
			Nickname: m.Nickname,
			Name:     m.Name,
			Role:     string(m.Role),
			Timezone: m.Timezone,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Me handles GET /me: the viewer as the session resolves them.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, memberResponse{
		ID:       viewer.UserID.String(),
		Nickname: viewer.Nickname,
		Role:     string(viewer.Role),
		Timezone: viewer.Timezone,
	})
}

// UpdateTimezone handles PUT /me/timezone. Listings localize against the
// new zone from the next request on.
func (h *UserHandler) UpdateTimezone(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req updateTimezoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateTimezone(r.Context(), viewer, req.Timezone)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, memberResponse{
		ID:       updated.ID.String(),
		Nickname: updated.Nickname,
		Name:     updated.Name,
		Role:     string(updated.Role),
		Timezone: updated.Timezone,
	})
}
