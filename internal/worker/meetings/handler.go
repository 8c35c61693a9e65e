package meetings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	meetingsService "github.com/m04kA/SMC-TeamsScheduler/internal/service/meetings"
)

// MeetingCreator создает встречу для бронирования
type MeetingCreator interface {
	CreateForBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Handler обработчик задач meeting:create
type Handler struct {
	creator MeetingCreator
	logger  Logger
}

// NewHandler создает обработчик задач создания встреч
func NewHandler(creator MeetingCreator, logger Logger) *Handler {
	return &Handler{
		creator: creator,
		logger:  logger,
	}
}

// Register регистрирует обработчик в маршрутизаторе задач
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.Handle(meetingsService.TypeCreateMeeting, h)
}

// ProcessTask реализует asynq.Handler.
// Ошибки данных не повторяются; ошибки сервиса встреч и хранилища возвращаются для повтора.
func (h *Handler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	id, err := meetingsService.ParseCreateMeetingTask(task)
	if err != nil {
		h.logger.Error("ProcessTask: %v", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	retried, _ := asynq.GetRetryCount(ctx)

	booking, err := h.creator.CreateForBooking(ctx, id)
	switch {
	case err == nil:
		h.logger.Info("ProcessTask: meeting ready for booking_id=%s (attempt %d)", booking.ID, retried+1)
		return nil
	case errors.Is(err, meetingsService.ErrBookingNotFound), errors.Is(err, meetingsService.ErrBookingNotScheduled):
		h.logger.Warn("ProcessTask: dropping task for booking_id=%s: %v", id, err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	default:
		h.logger.Warn("ProcessTask: booking_id=%s attempt %d failed, will retry: %v", id, retried+1, err)
		return err
	}
}
