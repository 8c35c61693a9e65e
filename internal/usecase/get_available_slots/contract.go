package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	// GetSlots возвращает доступные слоты на дату для длительности durationMinutes
	GetSlots(ctx context.Context, date time.Time, durationMinutes int) ([]domain.TimeSlot, error)
	// Config возвращает политику расписания
	Config() domain.SchedulerConfig
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
