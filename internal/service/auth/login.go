package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/alliancehub/backend/internal/domain"
)

// Login verifies email and password and issues a fresh session. Wrong email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}

	session, raw, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.Info("member logged in", "user_id", user.ID)

	return &Result{User: user, Session: session, RawToken: raw}, nil
}
