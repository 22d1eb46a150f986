package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/alliancehub/backend/internal/domain"
)

// Logout deletes the session behind the raw cookie token. Logging out with
// an unknown or already-deleted token succeeds silently.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}

	session, err := s.sessions.GetByTokenHash(ctx, hashToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("look up session: %w", err)
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
