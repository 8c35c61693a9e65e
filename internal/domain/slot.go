package domain

import "github.com/m04kA/SMC-TeamsScheduler/pkg/types"

// TimeSlot is a bookable interval produced by the availability engine.
// Only available slots are ever produced.
type TimeSlot struct {
	Time        types.TimeString
	EndTime     types.TimeString
	DisplayTime string
}

// Range returns the slot as a TimeRange
func (s TimeSlot) Range() TimeRange {
	return TimeRange{Start: s.Time, End: s.EndTime}
}

// FindSlot returns the slot starting at start
func FindSlot(slots []TimeSlot, start types.TimeString) (TimeSlot, bool) {
	for _, s := range slots {
		if s.Time.Minutes() == start.Minutes() {
			return s, true
		}
	}
	return TimeSlot{}, false
}
