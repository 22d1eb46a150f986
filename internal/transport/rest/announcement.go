package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/service/announcement"
)

// announcementService defines the minimal interface needed by AnnouncementHandler.
type announcementService interface {
	List(ctx context.Context, search string, limit, offset uint64) ([]domain.Announcement, error)
	Create(ctx context.Context, viewer domain.Viewer, input announcement.Input) (*domain.Announcement, error)
	Update(ctx context.Context, viewer domain.Viewer, id uuid.UUID, input announcement.Input) (*domain.Announcement, error)
	Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error
}

// AnnouncementHandler serves announcement endpoints.
type AnnouncementHandler struct {
	svc announcementService
	log *slog.Logger
}

// NewAnnouncementHandler creates an AnnouncementHandler.
func NewAnnouncementHandler(svc announcementService, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc, log: logger.With("handler", "announcement")}
}

type announcementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type announcementResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List handles GET /announcements?search=&limit=&offset=.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryUint(q.Get("limit"), 50)
	offset := queryUint(q.Get("offset"), 0)

	items, err := h.svc.List(r.Context(), q.Get("search"), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]announcementResponse, len(items))
	for i, a := range items {
		out[i] = toAnnouncementResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /announcements. Admin only.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}

	var req announcementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), viewer, announcement.Input{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAnnouncementResponse(*created))
}

// Update handles PUT /announcements/{id}. Admin only.
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewer, ok := viewerFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req announcementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), viewer, id, announcement.Input{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toAnnouncementResponse(*updated))
}

// Delete handles DELETE /announcements/{id}. Admin only.
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func toAnnouncementResponse(a domain.Announcement) announcementResponse {
	return announcementResponse{
		ID:        a.ID.String(),
		Title:     a.Title,
		Content:   a.Content,
		CreatedBy: a.CreatedBy.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func queryUint(s string, def uint64) uint64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}
