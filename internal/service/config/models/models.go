package models

import "github.com/m04kA/SMC-TeamsScheduler/internal/domain"

// TimeRangeResponse интервал времени "HH:MM"-"HH:MM"
type TimeRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ConfigResponse публичная политика расписания
type ConfigResponse struct {
	BusinessHours        TimeRangeResponse  `json:"businessHours"`
	LunchBreak           *TimeRangeResponse `json:"lunchBreak,omitempty"`
	SlotIntervalMinutes  int                `json:"slotInterval"`
	PaddingMinutes       int                `json:"paddingMinutes"`
	MaxBookingDaysAhead  int                `json:"maxBookingDaysAhead"`
	MinBookingHoursAhead int                `json:"minBookingHoursAhead"`
	ExcludeWeekends      bool               `json:"excludeWeekends"`
	ExcludedDates        []string           `json:"excludedDates"`
	AvailableDurations   []int              `json:"availableDurations"`
	DefaultDuration      int                `json:"defaultDuration"`
	TimeZone             string             `json:"timeZone"`
	BookableFrom         string             `json:"bookableFrom"`  // сегодня в зоне расписания
	BookableUntil        string             `json:"bookableUntil"` // сегодня + maxBookingDaysAhead
}

// FromDomainRange конвертирует интервал в DTO
func FromDomainRange(r domain.TimeRange) TimeRangeResponse {
	return TimeRangeResponse{Start: r.Start.String(), End: r.End.String()}
}
