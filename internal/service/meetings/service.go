package meetings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamsScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/ptr"
)

// Результаты для метрики meetings_total
const (
	ResultCreated       = "created"
	ResultFailed        = "failed"
	ResultQueued        = "queued"
	ResultEnqueueFailed = "enqueue_failed"
)

// Config параметры сервиса встреч
type Config struct {
	TimeZone string
	Location *time.Location
	// Timeout ограничивает один вызов сервиса встреч
	Timeout time.Duration
	// MaxRetry число повторов задачи в очереди
	MaxRetry int
}

// Service организует онлайн-встречи для созданных бронирований.
// Создание встречи best-effort: бронирование остается в силе при любой ошибке.
type Service struct {
	repo     BookingRepository
	client   MeetingClient
	enqueuer TaskEnqueuer
	cfg      Config
	metrics  Metrics
	logger   Logger
}

// NewService создает сервис встреч.
// client == nil отключает встречи; enqueuer == nil означает синхронное создание.
func NewService(
	repo BookingRepository,
	client MeetingClient,
	enqueuer TaskEnqueuer,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		repo:     repo,
		client:   client,
		enqueuer: enqueuer,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// Enabled возвращает true, если для новых бронирований запрашиваются встречи
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Arrange запрашивает встречу для только что созданного бронирования.
// В режиме очереди ставит задачу и возвращает бронирование без изменений,
// иначе создает встречу сразу и возвращает бронирование со ссылкой.
func (s *Service) Arrange(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !s.Enabled() {
		return booking, nil
	}

	if s.enqueuer == nil {
		return s.CreateForBooking(ctx, booking.ID)
	}

	task, err := NewCreateMeetingTask(booking.ID)
	if err != nil {
		s.incMetric(ResultEnqueueFailed)
		return booking, err
	}

	opts := []asynq.Option{asynq.MaxRetry(s.cfg.MaxRetry)}
	if s.cfg.Timeout > 0 {
		opts = append(opts, asynq.Timeout(s.cfg.Timeout))
	}

	info, err := s.enqueuer.EnqueueContext(ctx, task, opts...)
	if err != nil {
		s.incMetric(ResultEnqueueFailed)
		s.logger.Error("Arrange: failed to enqueue meeting for booking_id=%s: %v", booking.ID, err)
		return booking, fmt.Errorf("%w: booking_id=%s: %v", ErrEnqueue, booking.ID, err)
	}

	s.incMetric(ResultQueued)
	s.logger.Info("Arrange: meeting task queued: booking_id=%s task_id=%s", booking.ID, info.ID)

	return booking, nil
}

// CreateForBooking создает встречу для бронирования и сохраняет ссылку.
// Повторный вызов для бронирования со встречей ничего не делает.
// При ошибке сервиса встреч статус встречи остается pending.
func (s *Service) CreateForBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("%w: meetings are disabled", ErrInternal)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking_id=%s", ErrBookingNotFound, id)
		}
		s.logger.Error("CreateForBooking: failed to load booking_id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: CreateForBooking - load booking: %v", ErrInternal, err)
	}

	if booking.HasMeeting() {
		return booking, nil
	}
	if !booking.IsScheduled() {
		s.logger.Warn("CreateForBooking: booking_id=%s has status %s, meeting skipped", id, booking.Status)
		return nil, fmt.Errorf("%w: booking_id=%s", ErrBookingNotScheduled, id)
	}

	req := BuildMeetingRequest(booking, s.cfg.TimeZone, s.cfg.Location)

	callCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	meeting, err := s.client.CreateMeeting(callCtx, req)
	if err != nil {
		s.incMetric(ResultFailed)
		s.logger.Error("CreateForBooking: meeting service failed for booking_id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: booking_id=%s: %v", ErrMeetingFailed, id, err)
	}

	if err := s.repo.UpdateMeeting(ctx, id, domain.MeetingCreated, ptr.Ptr(meeting.JoinURL), ptr.Ptr(meeting.EventID)); err != nil {
		s.incMetric(ResultFailed)
		s.logger.Error("CreateForBooking: meeting event_id=%s created but not saved for booking_id=%s: %v",
			meeting.EventID, id, err)
		return nil, fmt.Errorf("%w: CreateForBooking - save meeting: %v", ErrInternal, err)
	}

	s.incMetric(ResultCreated)
	s.logger.Info("CreateForBooking: meeting created for booking_id=%s event_id=%s", id, meeting.EventID)

	booking.MeetingStatus = domain.MeetingCreated
	booking.MeetingJoinURL = ptr.Ptr(meeting.JoinURL)
	booking.MeetingEventID = ptr.Ptr(meeting.EventID)

	return booking, nil
}

func (s *Service) incMetric(result string) {
	if s.metrics != nil {
		s.metrics.IncMeeting(result)
	}
}
