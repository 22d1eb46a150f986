package domain

// UserRole represents the authorization level of an alliance member.
type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleMember, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// ResponseType represents a member's answer to a recurring event.
type ResponseType string

const (
	ResponseAccepted ResponseType = "ACCEPTED"
	ResponseDeclined ResponseType = "DECLINED"
)

func (t ResponseType) String() string { return string(t) }

func (t ResponseType) IsValid() bool {
	switch t {
	case ResponseAccepted, ResponseDeclined:
		return true
	}
	return false
}

// PollType distinguishes yes/no polls from multi-slot time polls.
type PollType string

const (
	PollTypeRegular PollType = "REGULAR"
	PollTypeTime    PollType = "TIME"
)

func (t PollType) String() string { return string(t) }

func (t PollType) IsValid() bool {
	switch t {
	case PollTypeRegular, PollTypeTime:
		return true
	}
	return false
}

// DayOfWeek is the symbolic weekday a recurring event or slot is anchored to.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// daysOfWeek is the canonical Monday-first ordering.
var daysOfWeek = [7]DayOfWeek{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

func (d DayOfWeek) String() string { return string(d) }

func (d DayOfWeek) IsValid() bool {
	for _, v := range daysOfWeek {
		if d == v {
			return true
		}
	}
	return false
}

// Index returns the Monday-based position of the day (Monday=0 .. Sunday=6),
// or -1 for an unknown value.
func (d DayOfWeek) Index() int {
	for i, v := range daysOfWeek {
		if d == v {
			return i
		}
	}
	return -1
}

// Add returns the day shifted by n days (n may be negative), wrapping the week.
func (d DayOfWeek) Add(n int) DayOfWeek {
	i := d.Index()
	if i < 0 {
		return d
	}
	i = ((i+n)%7 + 7) % 7
	return daysOfWeek[i]
}

// DaysOfWeek returns all weekdays in Monday-first order.
func DaysOfWeek() []DayOfWeek {
	out := make([]DayOfWeek, len(daysOfWeek))
	copy(out, daysOfWeek[:])
	return out
}
