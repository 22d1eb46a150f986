package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated alliance member.
type User struct {
	ID           uuid.UUID
	Email        string
	Nickname     string
	Name         string
	Timezone     string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Viewer is the authenticated identity attached to a request. Timezone is
// the member's IANA zone; an empty value means the viewer sees UTC.
type Viewer struct {
	UserID   uuid.UUID
	Nickname string
	Role     UserRole
	Timezone string
}

func (v Viewer) IsAdmin() bool {
	return v.Role.IsAdmin()
}
