package meetings

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/internal/integrations/teams"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateMeeting(ctx context.Context, id uuid.UUID, status domain.MeetingStatus, joinURL, eventID *string) error
}

// MeetingClient клиент сервиса онлайн-встреч
type MeetingClient interface {
	CreateMeeting(ctx context.Context, req teams.MeetingRequest) (*teams.Meeting, error)
}

// TaskEnqueuer постановщик фоновых задач (asynq.Client)
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Metrics метрики создания встреч
type Metrics interface {
	IncMeeting(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
