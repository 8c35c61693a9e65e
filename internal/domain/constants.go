package domain

// Defaults used when the configuration file omits a value
const (
	DefaultSlotIntervalMinutes  = 30
	DefaultPaddingMinutes       = 15
	DefaultMaxBookingDaysAhead  = 30
	DefaultMinBookingHoursAhead = 2
	DefaultDurationMinutes      = 60
	DefaultTimeZone             = "America/Chicago"
)

// DefaultAvailableDurations lists the meeting lengths offered out of the box
var DefaultAvailableDurations = []int{30, 60, 90, 120}

// Validation limits
const (
	MaxNameLength     = 200
	MaxEmailLength    = 320
	MaxPhoneLength    = 50
	MaxCompanyLength  = 200
	MaxPlatformLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
