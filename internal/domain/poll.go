package domain

import (
	"time"

	"github.com/google/uuid"
)

// Poll is either a yes/no question (REGULAR) or a weekly time-availability
// poll (TIME) with an ordered set of slots.
type Poll struct {
	ID          uuid.UUID
	Type        PollType
	Title       string
	Description string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

// PollVote is a member's yes/no answer to a REGULAR poll. At most one row per
// (UserID, PollID).
type PollVote struct {
	UserID    uuid.UUID
	PollID    uuid.UUID
	Vote      bool
	UpdatedAt time.Time
}

// TimeSlot is one proposed weekly time in a TIME poll. Position preserves
// the authoring order; slots are always presented in that order.
type TimeSlot struct {
	ID        uuid.UUID
	PollID    uuid.UUID
	Day       DayOfWeek
	TimeOfDay string // "HH:MM", 24-hour, reference zone
	Position  int
}

// TimeSlotResponse is a member's availability for one slot. At most one row
// per (UserID, TimeSlotID). Explicit false is stored so a member can revoke
// a previous yes; the read-side grid shows only positive availability.
type TimeSlotResponse struct {
	UserID     uuid.UUID
	TimeSlotID uuid.UUID
	Available  bool
	UpdatedAt  time.Time
}

// PollVoter is a read model joining a vote with the voter's nickname.
type PollVoter struct {
	PollID   uuid.UUID
	UserID   uuid.UUID
	Nickname string
	Vote     bool
}

// SlotResponder is a read model joining a slot response with the responder's
// nickname, used to build the availability matrix.
type SlotResponder struct {
	TimeSlotID uuid.UUID
	UserID     uuid.UUID
	Nickname   string
	Available  bool
}
