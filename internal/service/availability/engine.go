package availability

import (
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

// ComputeAvailableSlots returns the bookable slots of the given duration on date, ascending by start time.
//
// A slot is produced only when it lies inside business hours, does not intersect the lunch break,
// starts no earlier than now + MinBookingHoursAhead (checked for today only) and does not overlap
// any scheduled booking of that date widened by PaddingMinutes on both sides.
// Weekends (when excluded), excluded dates and dates before today yield no slots.
// A duration that never fits yields no slots; it is not an error.
//
// The calendar day of date is taken as-is (year, month, day); now is converted to the configured location.
func ComputeAvailableSlots(
	date time.Time,
	durationMinutes int,
	bookings []*domain.Booking,
	cfg domain.SchedulerConfig,
	now time.Time,
) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	if durationMinutes <= 0 || cfg.SlotIntervalMinutes <= 0 {
		return slots
	}

	loc := cfg.Loc()
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	today := cfg.Today(now)

	if day.Before(today) {
		return slots
	}
	if cfg.IsWeekendBlocked(day) || cfg.IsExcludedDate(day) {
		return slots
	}

	dayBookings := make([]domain.TimeRange, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsScheduled() || !b.OnDate(day) {
			continue
		}
		dayBookings = append(dayBookings, b.Interval())
	}

	businessStart := cfg.BusinessHours.Start.Minutes()
	businessEnd := cfg.BusinessHours.End.Minutes()
	isToday := day.Equal(today)
	earliest := now.Add(time.Duration(cfg.MinBookingHoursAhead) * time.Hour)

	for start := businessStart; start+durationMinutes <= businessEnd; start += cfg.SlotIntervalMinutes {
		end := start + durationMinutes

		if cfg.LunchBreak != nil && overlaps(start, end, cfg.LunchBreak.Start.Minutes(), cfg.LunchBreak.End.Minutes()) {
			continue
		}

		slotStart := types.MustFromMinutes(start)
		if isToday && slotStart.On(day, loc).Before(earliest) {
			continue
		}

		if conflictsWithBookings(start, end, dayBookings, cfg.PaddingMinutes) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Time:        slotStart,
			EndTime:     types.MustFromMinutes(end),
			DisplayTime: slotStart.Display(),
		})
	}

	return slots
}

// conflictsWithBookings reports whether [start, end) overlaps any booking widened by padding on both sides
func conflictsWithBookings(start, end int, bookings []domain.TimeRange, padding int) bool {
	for _, b := range bookings {
		if overlaps(start, end, b.Start.Minutes()-padding, b.End.Minutes()+padding) {
			return true
		}
	}
	return false
}

// overlaps is the half-open interval test; touching intervals do not overlap
func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
