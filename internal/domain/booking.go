package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCancelled BookingStatus = "cancelled"
)

// MeetingStatus tracks creation of the remote video meeting for a booking
type MeetingStatus string

const (
	MeetingNotRequested MeetingStatus = "not_requested"
	MeetingPending      MeetingStatus = "pending"
	MeetingCreated      MeetingStatus = "created"
)

// Attendee is the person who booked the session
type Attendee struct {
	Name    string
	Email   string
	Phone   *string
	Company *string
}

// Booking represents a scheduled training session
type Booking struct {
	ID              uuid.UUID
	Platform        string
	Attendee        Attendee
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	TimeZone        string
	Status          BookingStatus
	OrganizerEmail  *string
	Notes           *string

	MeetingStatus  MeetingStatus
	MeetingJoinURL *string
	MeetingEventID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the booking still occupies its slot
func (b *Booking) IsScheduled() bool {
	return b.Status == StatusScheduled
}

// HasMeeting returns true if a remote meeting link has been attached
func (b *Booking) HasMeeting() bool {
	return b.MeetingStatus == MeetingCreated && b.MeetingJoinURL != nil
}

// OnDate reports whether the booking falls on the calendar day of date (year, month, day compared)
func (b *Booking) OnDate(date time.Time) bool {
	y1, m1, d1 := b.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Interval returns the booked wall-clock interval
func (b *Booking) Interval() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// BookingStats aggregates bookings over a date range
type BookingStats struct {
	From       time.Time
	To         time.Time
	Total      int
	ByPlatform map[string]int
	ByStatus   map[BookingStatus]int
}
