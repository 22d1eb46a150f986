package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvitationToken is an opaque single-use signup token issued by an admin.
// AdminNickname records who the invite was addressed for; UsedBy/UsedByNickname
// are filled when a signup consumes the token.
type InvitationToken struct {
	Token          uuid.UUID
	AdminNickname  string
	CreatedBy      uuid.UUID
	ExpiresAt      time.Time
	Used           bool
	UsedBy         *uuid.UUID
	UsedByNickname *string
	CreatedAt      time.Time
}

// IsExpired returns true if the token has expired relative to now.
func (t *InvitationToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// IsRedeemable reports whether the token can still be consumed by a signup.
func (t *InvitationToken) IsRedeemable(now time.Time) bool {
	return !t.Used && !t.IsExpired(now)
}
