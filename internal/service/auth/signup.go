package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/alliancehub/backend/internal/domain"
)

// Result is what a successful signup or login hands to the transport layer:
// the user, the stored session and the raw token to put in the cookie.
type Result struct {
	User     *domain.User
	Session  *domain.Session
	RawToken string
}

// Signup registers a new member. Signup is invite-only: the token must exist,
// be unused and unexpired. User creation and token consumption happen in one
// transaction so a token is never burned on a failed signup.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	token, err := uuid.Parse(input.InviteToken)
	if err != nil {
		// Validate catches this; kept as a guard for direct callers.
		return nil, domain.NewValidationError("invite_token", "must be a valid token")
	}

	invite, err := s.invites.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("invite_token", "invalid or already used")
		}
		return nil, fmt.Errorf("look up invite: %w", err)
	}
	if !invite.IsRedeemable(time.Now().UTC()) {
		return nil, domain.NewValidationError("invite_token", "invalid or already used")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	var created *domain.User
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err = s.users.Create(ctx, &domain.User{
			ID:           uuid.New(),
			Email:        input.Email,
			Nickname:     input.Nickname,
			Name:         input.Name,
			Timezone:     timezone,
			Role:         domain.UserRoleMember,
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}

		// The used=FALSE guard in MarkUsed makes concurrent signups with the
		// same token race-safe: the loser rolls back its user row.
		if _, err := s.invites.MarkUsed(ctx, token, created.ID, created.Nickname); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.NewValidationError("invite_token", "invalid or already used")
			}
			return fmt.Errorf("consume invite: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	session, raw, err := s.issueSession(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	s.log.Info("member signed up",
		"user_id", created.ID,
		"nickname", created.Nickname,
	)

	return &Result{User: created, Session: session, RawToken: raw}, nil
}
