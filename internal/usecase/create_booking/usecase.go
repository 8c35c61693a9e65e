package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamsScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/ptr"
)

// Результаты для метрики bookings_total
const (
	ResultConfirmed        = "confirmed"
	ResultValidationFailed = "validation_failed"
	ResultConflict         = "conflict"
	ResultInvalidData      = "invalid_data"
	ResultFailed           = "failed"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	availability   AvailabilityService
	view           BookingView
	meetings       MeetingService
	txManager      TransactionManager
	metrics        Metrics
	organizerEmail string
	storeTimeout   time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case.
// meetings и metrics могут быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	view BookingView,
	meetings MeetingService,
	txManager TransactionManager,
	metrics Metrics,
	organizerEmail string,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		availability:   availability,
		view:           view,
		meetings:       meetings,
		txManager:      txManager,
		metrics:        metrics,
		organizerEmail: organizerEmail,
		storeTimeout:   storeTimeout,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования.
// Отсутствие пересечений гарантирует хранилище (сериализуемая транзакция и exclusion constraint),
// проверка по слотам лишь отсекает заведомо занятое время.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	cfg := uc.availability.Config()
	now := uc.timeProvider.Now()

	// Запрос вызывающего не изменяем
	withDefaults := *req
	if withDefaults.DurationMinutes == 0 {
		withDefaults.DurationMinutes = cfg.DefaultDuration
	}
	req = &withDefaults

	uc.logger.Info("CreateBooking: platform=%q, date=%s, time=%s, duration=%d",
		req.Platform, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация формы (без I/O)
	if err := validateRequest(req, cfg, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.incMetric(ResultValidationFailed)
		return nil, err
	}

	// 2. Находим выбранный слот среди доступных
	slots, err := uc.availability.GetSlots(ctx, req.Date, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get available slots: %v", err)
		uc.incMetric(ResultFailed)
		return nil, fmt.Errorf("%w: failed to get available slots: %v", ErrInternal, err)
	}

	slot, ok := domain.FindSlot(slots, req.StartTime)
	if !ok {
		uc.logger.Warn("CreateBooking: slot %s on %s is not available", req.StartTime, req.Date.Format(domain.DateFormat))
		uc.incMetric(ResultConflict)
		return nil, ErrSlotNotAvailable
	}

	// 3. Собираем бронирование
	booking := uc.buildBooking(req, cfg, slot)

	// 4. Сохраняем в сериализуемой транзакции с таймаутом хранилища
	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	var created *domain.Booking
	err = uc.txManager.DoSerializable(storeCtx, func(txCtx context.Context) error {
		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}
		created = result
		return nil
	})

	if err != nil {
		return nil, uc.handleStoreError(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)
	uc.incMetric(ResultConfirmed)

	// 5. Обновляем локальное представление бронирований на дату
	uc.view.Upsert(created)

	// 6. Встреча best-effort: бронирование остается в силе при ошибке
	resp := &Response{Booking: created}
	if uc.meetings != nil && uc.meetings.Enabled() {
		withMeeting, err := uc.meetings.Arrange(ctx, created)
		if err != nil {
			uc.logger.Warn("CreateBooking: booking id=%s created, meeting pending: %v", created.ID, err)
			resp.MeetingError = true
		} else if withMeeting != nil {
			resp.Booking = withMeeting
		}
	}

	return resp, nil
}

func (uc *UseCase) buildBooking(req *Request, cfg domain.SchedulerConfig, slot domain.TimeSlot) *domain.Booking {
	y, m, d := req.Date.Date()

	meetingStatus := domain.MeetingNotRequested
	if uc.meetings != nil && uc.meetings.Enabled() {
		meetingStatus = domain.MeetingPending
	}

	notes := req.Notes
	if notes == nil || strings.TrimSpace(*notes) == "" {
		notes = ptr.Ptr(fmt.Sprintf("%s training session scheduled via Teams Scheduler", strings.TrimSpace(req.Platform)))
	}

	return &domain.Booking{
		Platform: strings.TrimSpace(req.Platform),
		Attendee: domain.Attendee{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Phone:   trimOrNil(req.Phone),
			Company: trimOrNil(req.Company),
		},
		Date:            time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		StartTime:       slot.Time,
		EndTime:         slot.EndTime,
		DurationMinutes: req.DurationMinutes,
		TimeZone:        cfg.TimeZone,
		Status:          domain.StatusScheduled,
		OrganizerEmail:  ptr.OrNil(uc.organizerEmail),
		Notes:           notes,
		MeetingStatus:   meetingStatus,
	}
}

// handleStoreError переводит ошибку хранилища в ошибку usecase; исходная ошибка только логируется
func (uc *UseCase) handleStoreError(err error) error {
	switch classifyStoreError(err) {
	case ErrSlotNotAvailable:
		uc.logger.Warn("CreateBooking: slot taken concurrently: %v", err)
		uc.incMetric(ResultConflict)
		return ErrSlotNotAvailable
	case ErrInvalidData:
		uc.logger.Warn("CreateBooking: booking rejected by store: %v", err)
		uc.incMetric(ResultInvalidData)
		return ErrInvalidData
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		uc.incMetric(ResultFailed)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

// classifyStoreError распознает конфликт и некорректные данные, в том числе в ошибке коммита
func classifyStoreError(err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrSlotConflict):
		return ErrSlotNotAvailable
	case errors.Is(err, bookingRepo.ErrInvalidData):
		return ErrInvalidData
	}

	switch bookingRepo.ClassifyError(err) {
	case bookingRepo.ErrSlotConflict:
		return ErrSlotNotAvailable
	case bookingRepo.ErrInvalidData:
		return ErrInvalidData
	default:
		return ErrInternal
	}
}

func (uc *UseCase) incMetric(result string) {
	if uc.metrics != nil {
		uc.metrics.IncBooking(result)
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr.OrNil(strings.TrimSpace(*s))
}
