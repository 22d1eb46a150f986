// Package announcement implements the announcement board: admin CRUD and a
// member-visible listing.
package announcement

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/adapter/postgres/announcement"
	"github.com/alliancehub/backend/internal/domain"
)

type announcementRepo interface {
	Create(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error)
	List(ctx context.Context, filter announcement.ListFilter) ([]domain.Announcement, error)
	Update(ctx context.Context, a *domain.Announcement) (*domain.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service implements the announcement business logic.
type Service struct {
	announcements announcementRepo
	log           *slog.Logger
}

// NewService creates a new announcement service.
func NewService(log *slog.Logger, announcements announcementRepo) *Service {
	return &Service{announcements: announcements, log: log}
}

// Input holds parameters for creating or updating an announcement.
type Input struct {
	Title   string
	Content string
}

// Validate validates the announcement input.
func (i Input) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if utf8.RuneCountInString(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}

	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if utf8.RuneCountInString(i.Content) > 10000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create posts a new announcement. Admin only.
func (s *Service) Create(ctx context.Context, viewer domain.Viewer, input Input) (*domain.Announcement, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("create announcement: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.announcements.Create(ctx, &domain.Announcement{
		ID:        uuid.New(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: viewer.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	s.log.Info("announcement posted", "announcement_id", created.ID, "by", viewer.UserID)
	return created, nil
}

// List returns announcements newest first. Search narrows by title; a zero
// limit returns everything.
func (s *Service) List(ctx context.Context, search string, limit, offset uint64) ([]domain.Announcement, error) {
	items, err := s.announcements.List(ctx, announcement.ListFilter{
		Search: search,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

// Update rewrites an announcement. Admin only.
func (s *Service) Update(ctx context.Context, viewer domain.Viewer, id uuid.UUID, input Input) (*domain.Announcement, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("update announcement: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.announcements.Update(ctx, &domain.Announcement{
		ID:      id,
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}

	return updated, nil
}

// Delete removes an announcement. Admin only.
func (s *Service) Delete(ctx context.Context, viewer domain.Viewer, id uuid.UUID) error {
	if !viewer.IsAdmin() {
		return fmt.Errorf("delete announcement: %w", domain.ErrForbidden)
	}

	if err := s.announcements.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	s.log.Info("announcement deleted", "announcement_id", id, "by", viewer.UserID)
	return nil
}
