// Package auth implements signup, login and cookie-session validation.
//
// Sessions are opaque: the client holds a random token in a cookie and the
// database stores only its SHA-256 hash. Validation renews sessions past the
// half-life so active members never get logged out.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alliancehub/backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type sessionRepo interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	Extend(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type inviteRepo interface {
	GetByToken(ctx context.Context, token uuid.UUID) (*domain.InvitationToken, error)
	MarkUsed(ctx context.Context, token uuid.UUID, userID uuid.UUID, nickname string) (*domain.InvitationToken, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the authentication business logic.
type Service struct {
	users    userRepo
	sessions sessionRepo
	invites  inviteRepo
	tx       txManager
	log      *slog.Logger

	sessionTTL time.Duration
	hashCost   int
}

// NewService creates a new auth service. sessionTTL is the full lifetime of
// a fresh session; hashCost is the bcrypt cost for password hashing.
func NewService(
	log *slog.Logger,
	users userRepo,
	sessions sessionRepo,
	invites inviteRepo,
	tx txManager,
	sessionTTL time.Duration,
	hashCost int,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		invites:    invites,
		tx:         tx,
		log:        log,
		sessionTTL: sessionTTL,
		hashCost:   hashCost,
	}
}

// issueSession creates a fresh session for the user and returns it together
// with the raw cookie token.
func (s *Service) issueSession(ctx context.Context, userID uuid.UUID) (*domain.Session, string, error) {
	raw, hash, err := newSessionToken()
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	session, err := s.sessions.Create(ctx, &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return nil, "", err
	}

	return session, raw, nil
}
