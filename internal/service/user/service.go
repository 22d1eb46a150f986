// Package user implements the member roster and profile settings.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	UpdateTimezone(ctx context.Context, id uuid.UUID, timezone string) (*domain.User, error)
}

// Service implements the user business logic.
type Service struct {
	users userRepo
	log   *slog.Logger
}

// NewService creates a new user service.
func NewService(log *slog.Logger, users userRepo) *Service {
	return &Service{users: users, log: log}
}

// Member is a roster entry: the public subset of a user.
type Member struct {
	ID       uuid.UUID
	Nickname string
	Name     string
	Role     domain.UserRole
	Timezone string
}

// List returns the member roster sorted by nickname.
func (s *Service) List(ctx context.Context) ([]Member, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]Member, len(users))
	for i, u := range users {
		members[i] = Member{
			ID:       u.ID,
			Nickname: u.Nickname,
			Name:     u.Name,
			Role:     u.Role,
			Timezone: u.Timezone,
		}
	}
	return members, nil
}

// UpdateTimezone changes the viewer's preferred IANA zone. Every listing
// localizes against this value from the next request on.
func (s *Service) UpdateTimezone(ctx context.Context, viewer domain.Viewer, timezone string) (*domain.User, error) {
	if timezone == "" {
		return nil, domain.NewValidationError("timezone", "required")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, domain.NewValidationError("timezone", "must be a valid IANA zone")
	}

	updated, err := s.users.UpdateTimezone(ctx, viewer.UserID, timezone)
	if err != nil {
		return nil, fmt.Errorf("update timezone: %w", err)
	}

	return updated, nil
}
