package domain

import (
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

// TimeRange is a same-day wall-clock interval [Start, End)
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports whether two half-open intervals intersect. Touching intervals do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Minutes() < other.End.Minutes() && r.End.Minutes() > other.Start.Minutes()
}

// Contains reports whether other lies entirely inside r.
func (r TimeRange) Contains(other TimeRange) bool {
	return other.Start.Minutes() >= r.Start.Minutes() && other.End.Minutes() <= r.End.Minutes()
}

// SchedulerConfig is the process-wide scheduling policy.
// It is built once at startup and passed explicitly to every component.
type SchedulerConfig struct {
	BusinessHours        TimeRange
	LunchBreak           *TimeRange // nil = no lunch break
	SlotIntervalMinutes  int
	PaddingMinutes       int
	MaxBookingDaysAhead  int
	MinBookingHoursAhead int
	ExcludeWeekends      bool
	ExcludedDates        map[string]struct{} // keys in DateFormat
	AvailableDurations   []int
	DefaultDuration      int
	TimeZone             string
	Location             *time.Location // resolved TimeZone; nil = UTC
}

// Loc returns the configured location, defaulting to UTC
func (c SchedulerConfig) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// IsDurationAllowed reports whether minutes is one of the available durations
func (c SchedulerConfig) IsDurationAllowed(minutes int) bool {
	for _, d := range c.AvailableDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// IsExcludedDate reports whether date is blocked entirely
func (c SchedulerConfig) IsExcludedDate(date time.Time) bool {
	_, ok := c.ExcludedDates[date.Format(DateFormat)]
	return ok
}

// IsWeekendBlocked reports whether date is a Saturday or Sunday that the policy excludes
func (c SchedulerConfig) IsWeekendBlocked(date time.Time) bool {
	if !c.ExcludeWeekends {
		return false
	}
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Today returns the current calendar date in the configured location
func (c SchedulerConfig) Today(now time.Time) time.Time {
	y, m, d := now.In(c.Loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Loc())
}

// LastBookableDate returns today + MaxBookingDaysAhead
func (c SchedulerConfig) LastBookableDate(now time.Time) time.Time {
	return c.Today(now).AddDate(0, 0, c.MaxBookingDaysAhead)
}
