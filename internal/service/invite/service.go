// Package invite implements invitation token management: admins mint and
// list tokens; signup consumption lives in the auth service.
package invite

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

type inviteRepo interface {
	Create(ctx context.Context, t *domain.InvitationToken) (*domain.InvitationToken, error)
	List(ctx context.Context) ([]domain.InvitationToken, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Service implements the invitation business logic.
type Service struct {
	invites inviteRepo
	log     *slog.Logger
	ttl     time.Duration
}

// NewService creates a new invite service. ttl is how long a fresh token
// stays redeemable.
func NewService(log *slog.Logger, invites inviteRepo, ttl time.Duration) *Service {
	return &Service{invites: invites, log: log, ttl: ttl}
}

// CreateInput holds parameters for minting an invitation.
type CreateInput struct {
	AdminNickname string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	if i.AdminNickname == "" {
		return domain.NewValidationError("admin_nickname", "required")
	}
	if utf8.RuneCountInString(i.AdminNickname) > 32 {
		return domain.NewValidationError("admin_nickname", "too long")
	}
	return nil
}

// Create mints a fresh single-use invitation token. Admin only.
func (s *Service) Create(ctx context.Context, viewer domain.Viewer, input CreateInput) (*domain.InvitationToken, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("create invite: %w", domain.ErrForbidden)
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.invites.Create(ctx, &domain.InvitationToken{
		Token:         uuid.New(),
		AdminNickname: input.AdminNickname,
		CreatedBy:     viewer.UserID,
		ExpiresAt:     time.Now().UTC().Add(s.ttl),
	})
	if err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}

	s.log.Info("invite created", "token", created.Token, "for", created.AdminNickname, "by", viewer.UserID)
	return created, nil
}

// List returns all invitations, newest first. Admin only.
func (s *Service) List(ctx context.Context, viewer domain.Viewer) ([]domain.InvitationToken, error) {
	if !viewer.IsAdmin() {
		return nil, fmt.Errorf("list invites: %w", domain.ErrForbidden)
	}

	tokens, err := s.invites.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	return tokens, nil
}

// PurgeExpired removes unused tokens past their expiry. Called by the
// cleanup job.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.invites.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge expired invites: %w", err)
	}
	return n, nil
}
