package announcement

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	repo "github.com/alliancehub/backend/internal/adapter/postgres/announcement"
	"github.com/alliancehub/backend/internal/domain"
)

type mockAnnouncementRepo struct {
	CreateFunc  func(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	ListFunc    func(ctx context.Context, filter repo.ListFilter) ([]domain.Announcement, error)
	UpdateFunc  func(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockAnnouncementRepo) Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	return m.CreateFunc(ctx, a)
}

func (m *mockAnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockAnnouncementRepo) List(ctx context.Context, filter repo.ListFilter) ([]domain.Announcement, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockAnnouncementRepo) Update(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
	return m.UpdateFunc(ctx, a)
}

func (m *mockAnnouncementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func admin() domain.Viewer {
	return domain.Viewer{UserID: uuid.New(), Role: domain.UserRoleAdmin}
}

func member() domain.Viewer {
	return domain.Viewer{UserID: uuid.New(), Role: domain.UserRoleMember}
}

func TestService_Create_Success(t *testing.T) {
	t.Parallel()

	viewer := admin()
	mock := &mockAnnouncementRepo{
		CreateFunc: func(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error) {
			if a.CreatedBy != viewer.UserID {
				t.Errorf("CreatedBy mismatch: got %s", a.CreatedBy)
			}
			return a, nil
		},
	}

	svc := NewService(testLogger(), mock)

	created, err := svc.Create(context.Background(), viewer, Input{Title: "Siege moved", Content: "Now on Saturday."})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("created announcement should have an ID")
	}
}

func TestService_Create_MemberForbidden(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &mockAnnouncementRepo{})

	_, err := svc.Create(context.Background(), member(), Input{Title: "x", Content: "y"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("member create should be ErrForbidden, got %v", err)
	}
}

func TestService_Create_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &mockAnnouncementRepo{})

	cases := map[string]Input{
		"missing title":   {Content: "y"},
		"missing content": {Title: "x"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), admin(), input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestService_List_PassesFilter(t *testing.T) {
	t.Parallel()

	mock := &mockAnnouncementRepo{
		ListFunc: func(ctx context.Context, filter repo.ListFilter) ([]domain.Announcement, error) {
			if filter.Search != "siege" || filter.Limit != 10 || filter.Offset != 20 {
				t.Errorf("filter mismatch: %+v", filter)
			}
			return nil, nil
		},
	}

	svc := NewService(testLogger(), mock)

	if _, err := svc.List(context.Background(), "siege", 10, 20); err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
}

func TestService_Delete_MemberForbidden(t *testing.T) {
	t.Parallel()

	svc := NewService(testLogger(), &mockAnnouncementRepo{})

	err := svc.Delete(context.Background(), member(), uuid.New())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("member delete should be ErrForbidden, got %v", err)
	}
}
