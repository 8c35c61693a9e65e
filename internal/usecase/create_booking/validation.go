package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validateRequest проверяет форму до любых обращений к хранилищу и собирает все нарушения.
// Возвращает nil или *ValidationError.
func validateRequest(req *Request, cfg domain.SchedulerConfig, now time.Time) error {
	var messages []string

	if strings.TrimSpace(req.Platform) == "" {
		messages = append(messages, "Platform is required")
	} else if utf8.RuneCountInString(req.Platform) > domain.MaxPlatformLength {
		messages = append(messages, fmt.Sprintf("Platform must be at most %d characters", domain.MaxPlatformLength))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		messages = append(messages, "Name is required")
	} else if utf8.RuneCountInString(name) > domain.MaxNameLength {
		messages = append(messages, fmt.Sprintf("Name must be at most %d characters", domain.MaxNameLength))
	}

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		messages = append(messages, "Email is required")
	case len(email) > domain.MaxEmailLength || !emailPattern.MatchString(email):
		messages = append(messages, "Please enter a valid email address")
	}

	if req.Phone != nil && utf8.RuneCountInString(*req.Phone) > domain.MaxPhoneLength {
		messages = append(messages, fmt.Sprintf("Phone must be at most %d characters", domain.MaxPhoneLength))
	}
	if req.Company != nil && utf8.RuneCountInString(*req.Company) > domain.MaxCompanyLength {
		messages = append(messages, fmt.Sprintf("Company must be at most %d characters", domain.MaxCompanyLength))
	}

	if req.Date.IsZero() {
		messages = append(messages, "Please select a date")
	} else {
		y, m, d := req.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, cfg.Loc())
		if day.Before(cfg.Today(now)) {
			messages = append(messages, "Bookings cannot be made for past dates")
		} else if day.After(cfg.LastBookableDate(now)) {
			messages = append(messages, fmt.Sprintf("Bookings can only be made up to %d days in advance", cfg.MaxBookingDaysAhead))
		}
	}

	if req.StartTime.IsZero() {
		messages = append(messages, "Please select a time slot")
	} else if err := req.StartTime.Validate(); err != nil {
		messages = append(messages, "Please select a valid time slot")
	}

	if !cfg.IsDurationAllowed(req.DurationMinutes) {
		messages = append(messages, fmt.Sprintf("Please select a duration of %s minutes", joinDurations(cfg.AvailableDurations)))
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

func joinDurations(durations []int) string {
	parts := make([]string, len(durations))
	for i, d := range durations {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ", ")
}
