package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/internal/integrations/teams"
)

// BookingView источник бронирований на дату (кэш поверх хранилища)
type BookingView interface {
	GetBookingsForDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CalendarClient календарь организатора; занятые события блокируют слоты так же, как бронирования
type CalendarClient interface {
	ListCalendarEvents(ctx context.Context, start, end time.Time) ([]teams.CalendarEvent, error)
}

// Metrics метрики выдачи слотов
type Metrics interface {
	ObserveSlots(durationMinutes, count int)
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
