package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// Store источник бронирований (репозиторий)
type Store interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// Metrics счётчик попаданий в кэш
type Metrics interface {
	IncCacheLookup(hit bool)
}
