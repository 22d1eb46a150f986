// Package ctxutil carries request-scoped identity through context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

type ctxKey string

const (
	viewerKey    ctxKey = "viewer"
	requestIDKey ctxKey = "request_id"
)

// WithViewer stores the authenticated viewer in the context.
func WithViewer(ctx context.Context, v domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// ViewerFromCtx extracts the viewer from the context.
// Returns false if the request is anonymous.
func ViewerFromCtx(ctx context.Context) (domain.Viewer, bool) {
	v, ok := ctx.Value(viewerKey).(domain.Viewer)
	if !ok || v.UserID == uuid.Nil {
		return domain.Viewer{}, false
	}
	return v, true
}

// IsAdminCtx reports whether the context viewer has the admin role.
func IsAdminCtx(ctx context.Context) bool {
	v, ok := ViewerFromCtx(ctx)
	return ok && v.IsAdmin()
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
