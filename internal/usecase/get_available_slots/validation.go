package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, cfg domain.SchedulerConfig) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !cfg.IsDurationAllowed(req.DurationMinutes) {
		return fmt.Errorf("%w: %d minutes, allowed %v", ErrInvalidDuration, req.DurationMinutes, cfg.AvailableDurations)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше maxBookingDaysAhead
func validateDate(date time.Time, now time.Time, cfg domain.SchedulerConfig) error {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, cfg.Loc())

	if day.Before(cfg.Today(now)) {
		return ErrInvalidDate
	}

	if day.After(cfg.LastBookableDate(now)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, cfg.MaxBookingDaysAhead)
	}

	return nil
}
