package middleware

import (
	"context"
	"net/http"

	"github.com/alliancehub/backend/internal/config"
	"github.com/alliancehub/backend/internal/domain"
	"github.com/alliancehub/backend/pkg/ctxutil"
)

// sessionValidator resolves a raw session cookie value into a viewer.
// Validation may extend the session, in which case the returned session
// carries the new expiry.
type sessionValidator interface {
	ValidateSession(ctx context.Context, rawToken string) (domain.Viewer, *domain.Session, error)
}

// Auth returns middleware that authenticates requests via the session
// cookie. Requests without the cookie pass through anonymous; a cookie
// that fails validation is rejected with 401 and cleared on the client.
// On success the cookie expiry is re-issued to track the session row.
func Auth(sessions sessionValidator, cfg config.SessionConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(cfg.CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			viewer, session, err := sessions.ValidateSession(r.Context(), c.Value)
			if err != nil {
				ClearSessionCookie(w, cfg)
				unauthorized(w)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    c.Value,
				Path:     "/",
				Expires:  session.ExpiresAt,
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := ctxutil.WithViewer(r.Context(), viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401. Place after Auth on
// routes that need an authenticated viewer.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.ViewerFromCtx(r.Context()); !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetSessionCookie issues the session cookie for a freshly created session.
func SetSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, rawToken string, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    rawToken,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
