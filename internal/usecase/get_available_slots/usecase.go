package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availability AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	cfg := uc.availability.Config()

	// 1. Длительность по умолчанию
	// Запрос вызывающего не изменяем
	withDefaults := *req
	if withDefaults.DurationMinutes == 0 {
		withDefaults.DurationMinutes = cfg.DefaultDuration
	}
	req = &withDefaults

	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d", req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 2. Валидация входных данных
	if err := validateRequest(req, cfg); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 3. Валидация даты
	if err := validateDate(req.Date, uc.timeProvider.Now(), cfg); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Считаем слоты
	slots, err := uc.availability.GetSlots(ctx, req.Date, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for date=%s, duration=%d",
		len(slots), req.Date.Format(domain.DateFormat), req.DurationMinutes)

	return &Response{
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		TimeZone:        cfg.TimeZone,
		Slots:           slots,
	}, nil
}
