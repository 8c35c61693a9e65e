package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	GetSlots(ctx context.Context, date time.Time, durationMinutes int) ([]domain.TimeSlot, error)
	Config() domain.SchedulerConfig
}

// BookingView локальное представление бронирований по датам
type BookingView interface {
	Upsert(booking *domain.Booking)
}

// MeetingService организует онлайн-встречу для созданного бронирования (best-effort)
type MeetingService interface {
	Enabled() bool
	Arrange(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики исходов бронирования
type Metrics interface {
	IncBooking(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
