package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alliancehub/backend/internal/config"
	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/internal/transport/middleware"
)

// SessionValidator resolves a session cookie into a viewer. Satisfied by
// the auth service.
type SessionValidator interface {
	ValidateSession(ctx context.Context, rawToken string) (domain.Viewer, *domain.Session, error)
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Event        *EventHandler
	Poll         *PollHandler
	Announcement *AnnouncementHandler
	Invite       *InviteHandler
	User         *UserHandler
	Health       *HealthHandler
}

// NewRouter wires all routes with their middleware chains. Auth endpoints
// sit behind a tighter rate limit than the rest of the API; everything
// except health probes and auth requires a valid session.
func NewRouter(cfg *config.Config, logger *slog.Logger, sessions SessionValidator, h Handlers, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	authLimit := limiter.Limit(cfg.Limits.AuthPerMinute)
	protected := middleware.Chain(
		middleware.Auth(sessions, cfg.Session),
		middleware.RequireAuth,
	)

	// Health probes: public, unauthenticated.
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	// Auth: public but tightly rate limited. Logout needs the cookie but
	// tolerates a stale one, so it skips RequireAuth.
	mux.Handle("POST /auth/signup", authLimit(http.HandlerFunc(h.Auth.Signup)))
	mux.Handle("POST /auth/login", authLimit(http.HandlerFunc(h.Auth.Login)))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Auth.Logout))

	api := func(fn http.HandlerFunc) http.Handler { return protected(fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return protected(middleware.RequireAdmin(fn)) }

	mux.Handle("GET /events", api(h.Event.List))
	mux.Handle("POST /events", admin(h.Event.Create))
	mux.Handle("PUT /events/{id}", admin(h.Event.Update))
	mux.Handle("DELETE /events/{id}", admin(h.Event.Delete))
	mux.Handle("PUT /events/{id}/response", api(h.Event.Respond))

	mux.Handle("GET /polls", api(h.Poll.List))
	mux.Handle("POST /polls", admin(h.Poll.Create))
	mux.Handle("POST /polls/time", admin(h.Poll.CreateTime))
	mux.Handle("DELETE /polls/{id}", admin(h.Poll.Delete))
	mux.Handle("PUT /polls/{id}/vote", api(h.Poll.Vote))
	mux.Handle("PUT /polls/{id}/slots", api(h.Poll.RespondToSlots))

	mux.Handle("GET /announcements", api(h.Announcement.List))
	mux.Handle("POST /announcements", admin(h.Announcement.Create))
	mux.Handle("PUT /announcements/{id}", admin(h.Announcement.Update))
	mux.Handle("DELETE /announcements/{id}", admin(h.Announcement.Delete))

	mux.Handle("GET /invites", admin(h.Invite.List))
	mux.Handle("POST /invites", admin(h.Invite.Create))

	mux.Handle("GET /members", api(h.User.List))
	mux.Handle("GET /me", api(h.User.Me))
	mux.Handle("PUT /me/timezone", api(h.User.UpdateTimezone))

	return middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Limits.APIPerMinute),
	)(mux)
}
