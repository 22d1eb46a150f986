package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a weekly recurring alliance event. Day and TimeOfDay are authored
// in the server reference zone; they are localized per viewer at read time
// and never stored in any other zone.
type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	Day         DayOfWeek
	TimeOfDay   string // "HH:MM", 24-hour, reference zone
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventResponse is a member's answer to an event. At most one row exists per
// (UserID, EventID); a new submission overwrites the previous one.
type EventResponse struct {
	UserID    uuid.UUID
	EventID   uuid.UUID
	Response  ResponseType
	UpdatedAt time.Time
}

// EventResponder is a read model joining a response with the responder's
// nickname, used by the events listing.
type EventResponder struct {
	EventID  uuid.UUID
	UserID   uuid.UUID
	Nickname string
	Response ResponseType
}
