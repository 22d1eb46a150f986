package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is a cookie-backed login session. TokenHash is the SHA-256 hex of
// the raw cookie value; the raw value itself is never stored.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the session has expired relative to now.
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// NeedsRenewal reports whether less than half the session lifetime remains.
// Sessions are renewed on use past this point, so an active member is never
// logged out mid-use.
func (s *Session) NeedsRenewal(now time.Time, ttl time.Duration) bool {
	return s.ExpiresAt.Sub(now) < ttl/2
}
