package domain

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a plain text post visible to all members.
type Announcement struct {
	ID        uuid.UUID
	Title     string
	Content   string
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
