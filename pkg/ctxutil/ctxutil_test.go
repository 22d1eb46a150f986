package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

func TestWithViewer_And_ViewerFromCtx(t *testing.T) {
	t.Parallel()

	viewer := domain.Viewer{
		UserID:   uuid.New(),
		Nickname: "alice",
		Role:     domain.UserRoleMember,
		Timezone: "Europe/Berlin",
	}
	ctx := WithViewer(context.Background(), viewer)

	got, ok := ViewerFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid viewer")
	}
	if got != viewer {
		t.Fatalf("expected %+v, got %+v", viewer, got)
	}
}

func TestViewerFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	_, ok := ViewerFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestViewerFromCtx_NilUserID(t *testing.T) {
	t.Parallel()

	ctx := WithViewer(context.Background(), domain.Viewer{})

	_, ok := ViewerFromCtx(ctx)
	if ok {
		t.Fatal("expected ok=false for nil user ID")
	}
}

func TestIsAdminCtx(t *testing.T) {
	t.Parallel()

	if IsAdminCtx(context.Background()) {
		t.Fatal("anonymous context should not be admin")
	}

	member := WithViewer(context.Background(), domain.Viewer{
		UserID: uuid.New(), Role: domain.UserRoleMember,
	})
	if IsAdminCtx(member) {
		t.Fatal("member should not be admin")
	}

	admin := WithViewer(context.Background(), domain.Viewer{
		UserID: uuid.New(), Role: domain.UserRoleAdmin,
	})
	if !IsAdminCtx(admin) {
		t.Fatal("admin role should be admin")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
