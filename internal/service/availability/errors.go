package availability

import "errors"

var (
	// ErrBookingsUnavailable возвращается, когда не удалось получить бронирования на дату
	ErrBookingsUnavailable = errors.New("availability: failed to load bookings")
)
