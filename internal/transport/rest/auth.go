package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alliancehub/backend/internal/config"
	"github.com/alliancehub/backend/internal/service/auth"
	"github.com/alliancehub/backend/internal/transport/middleware"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Signup(ctx context.Context, input auth.SignupInput) (*auth.Result, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.Result, error)
	Logout(ctx context.Context, rawToken string) error
}

// AuthHandler serves signup, login and logout. Sessions travel in an
// HttpOnly cookie; the raw token never appears in a response body.
type AuthHandler struct {
	svc authService
	log *slog.Logger
	cfg config.SessionConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, cfg config.SessionConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg, log: logger.With("handler", "auth")}
}

type signupRequest struct {
	InviteToken string `json:"inviteToken"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Nickname    string `json:"nickname"`
	Name        string `json:"name"`
	Timezone    string `json:"timezone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	Timezone string `json:"timezone"`
}

// Signup handles POST /auth/signup. Invite-only registration: a valid
// unused token is consumed and a session cookie is issued.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Signup(r.Context(), auth.SignupInput{
		InviteToken: req.InviteToken,
		Email:       req.Email,
		Password:    req.Password,
		Nickname:    req.Nickname,
		Name:        req.Name,
		Timezone:    req.Timezone,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	middleware.SetSessionCookie(w, h.cfg, result.RawToken, result.Session)
	writeJSON(w, http.StatusCreated, toUserResponse(result))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	middleware.SetSessionCookie(w, h.cfg, result.RawToken, result.Session)
	writeJSON(w, http.StatusOK, toUserResponse(result))
}

// Logout handles POST /auth/logout. Always clears the cookie; an absent or
// unknown session is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var rawToken string
	if c, err := r.Cookie(h.cfg.CookieName); err == nil {
		rawToken = c.Value
	}

	if err := h.svc.Logout(r.Context(), rawToken); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	middleware.ClearSessionCookie(w, h.cfg)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toUserResponse(result *auth.Result) userResponse {
	return userResponse{
		ID:       result.User.ID.String(),
		Email:    result.User.Email,
		Nickname: result.User.Nickname,
		Name:     result.User.Name,
		Role:     string(result.User.Role),
		Timezone: result.User.Timezone,
	}
}
