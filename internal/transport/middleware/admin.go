package middleware

import (
	"net/http"

	"github.com/alliancehub/backend/pkg/ctxutil"
)

// RequireAdmin rejects non-admin viewers with 403. Services enforce the
// same rule on their inputs; this keeps admin routes closed even if a
// handler forgets to.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsAdminCtx(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"forbidden"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
