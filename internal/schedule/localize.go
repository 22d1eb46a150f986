// Package schedule implements the weekly recurring-time calculations the rest
// of the application builds on: localizing an authored day/time pair from the
// server reference zone into a viewer's zone, and aggregating per-slot
// availability responses into a display matrix.
//
// Everything here is a pure computation over caller-supplied inputs. The
// viewer's timezone is always passed in explicitly; this package never reads
// ambient environment state.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/alliancehub/backend/internal/domain"
)

// Typed failures. Both are local validation errors: never retried, always
// surfaced to the caller as a wrapped sentinel.
var (
	// ErrInvalidTimeFormat indicates a time-of-day that is not 24-hour "HH:MM".
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrUnresolvableTimezone indicates a reference zone that cannot be loaded.
	// Target zones never produce this error: an unrecognized or empty target
	// zone falls back to UTC (a viewer with a broken timezone still gets a
	// rendered page), whereas an unloadable reference zone means the authored
	// data itself is corrupt and must be reported.
	ErrUnresolvableTimezone = errors.New("unresolvable timezone")

	// ErrInvalidDayOfWeek indicates a day value outside MONDAY..SUNDAY.
	ErrInvalidDayOfWeek = errors.New("invalid day of week")
)

// timeOfDayRe accepts exactly 24-hour "HH:MM" with a leading zero.
var timeOfDayRe = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

// WeeklyTimePoint is a weekly recurring instant: a day-of-week plus a
// time-of-day, anchored to a fixed IANA reference zone. It carries no calendar
// date and repeats every week.
type WeeklyTimePoint struct {
	Day           domain.DayOfWeek
	TimeOfDay     string // "HH:MM", 24-hour
	ReferenceZone string // IANA zone the point was authored in
}

// LocalizedTimePoint is a WeeklyTimePoint re-expressed in a target zone. Both
// Day and TimeOfDay are recomputed: a conversion that crosses midnight shifts
// the effective weekday. Localized points are derived fresh on every render
// and never persisted — a stored copy would go stale across DST transitions.
type LocalizedTimePoint struct {
	Day       domain.DayOfWeek
	TimeOfDay string
	Source    WeeklyTimePoint
}

// Localize converts the point into targetZone using today's date to resolve
// the zone offsets. See LocalizeOn for the date-sensitivity caveat.
func Localize(p WeeklyTimePoint, targetZone string) (LocalizedTimePoint, error) {
	return LocalizeOn(p, targetZone, time.Now())
}

// LocalizeOn converts the point into targetZone, resolving DST-sensitive
// offsets on the calendar date of asOf (interpreted in the reference zone).
//
// Because DST rules vary through the year, a recurring weekly time is not
// zone-invariant: localizing the same point on different weeks can yield
// different clock times near DST boundaries. That is expected behavior.
//
// An empty or unrecognized targetZone falls back to UTC.
func LocalizeOn(p WeeklyTimePoint, targetZone string, asOf time.Time) (LocalizedTimePoint, error) {
	if !p.Day.IsValid() {
		return LocalizedTimePoint{}, fmt.Errorf("day %q: %w", p.Day, ErrInvalidDayOfWeek)
	}

	hour, minute, err := ParseTimeOfDay(p.TimeOfDay)
	if err != nil {
		return LocalizedTimePoint{}, err
	}

	refLoc, err := time.LoadLocation(p.ReferenceZone)
	if err != nil {
		return LocalizedTimePoint{}, fmt.Errorf("reference zone %q: %w", p.ReferenceZone, ErrUnresolvableTimezone)
	}

	targetLoc := resolveZone(targetZone)

	// Anchor the recurring time to a concrete civil date in the reference
	// zone, convert the resulting instant, then compare civil dates on both
	// sides to detect a midnight crossover.
	year, month, day := asOf.In(refLoc).Date()
	ref := time.Date(year, month, day, hour, minute, 0, 0, refLoc)
	conv := ref.In(targetLoc)

	shift := civilDaysBetween(ref, conv)

	return LocalizedTimePoint{
		Day:       p.Day.Add(shift),
		TimeOfDay: conv.Format("15:04"),
		Source:    p,
	}, nil
}

// Unlocalize maps a day/time a viewer entered in their own zone back into the
// reference zone, for write paths that accept viewer-local input. The viewer
// zone gets the same UTC fallback as any target zone.
func Unlocalize(day domain.DayOfWeek, timeOfDay, viewerZone, referenceZone string) (LocalizedTimePoint, error) {
	p := WeeklyTimePoint{
		Day:           day,
		TimeOfDay:     timeOfDay,
		ReferenceZone: resolveZone(viewerZone).String(),
	}
	return Localize(p, referenceZone)
}

// ParseTimeOfDay validates and splits a 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if !timeOfDayRe.MatchString(s) {
		return 0, 0, fmt.Errorf("time of day %q: %w", s, ErrInvalidTimeFormat)
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	return hour, minute, nil
}

// resolveZone loads an IANA zone, falling back to UTC for empty or
// unrecognized names.
func resolveZone(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// civilDaysBetween returns the whole-day difference between the civil date of
// a (in its own zone) and the civil date of b (in its own zone). For a single
// zone conversion the result is always -1, 0, or +1.
func civilDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
