package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alliancehub/backend/internal/domain"
)

// ValidateSession resolves the raw cookie token into the viewer identity.
// Expired sessions are deleted on sight. Sessions past their half-life are
// extended to a full TTL; the returned session carries the new expiry so the
// transport layer can refresh the cookie.
func (s *Service) ValidateSession(ctx context.Context, rawToken string) (domain.Viewer, *domain.Session, error) {
	if rawToken == "" {
		return domain.Viewer{}, nil, fmt.Errorf("missing session token: %w", domain.ErrUnauthorized)
	}

	session, err := s.sessions.GetByTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Viewer{}, nil, fmt.Errorf("unknown session: %w", domain.ErrUnauthorized)
		}
		return domain.Viewer{}, nil, fmt.Errorf("look up session: %w", err)
	}

	now := time.Now().UTC()
	if session.IsExpired(now) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil {
			s.log.Warn("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return domain.Viewer{}, nil, fmt.Errorf("session expired: %w", domain.ErrUnauthorized)
	}

	if session.NeedsRenewal(now, s.sessionTTL) {
		newExpiry := now.Add(s.sessionTTL)
		if err := s.sessions.Extend(ctx, session.ID, newExpiry); err != nil {
			// Renewal failing is not fatal; the session is still valid.
			s.log.Warn("failed to extend session", "session_id", session.ID, "error", err)
		} else {
			session.ExpiresAt = newExpiry
		}
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Viewer{}, nil, fmt.Errorf("session user gone: %w", domain.ErrUnauthorized)
		}
		return domain.Viewer{}, nil, fmt.Errorf("look up session user: %w", err)
	}

	viewer := domain.Viewer{
		UserID:   user.ID,
		Nickname: user.Nickname,
		Role:     user.Role,
		Timezone: user.Timezone,
	}

	return viewer, session, nil
}
