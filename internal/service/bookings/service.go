package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamsScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings/models"
)

// maxStatsRangeDays ограничивает период статистики
const maxStatsRangeDays = 366

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetStats считает бронирования за период [from, to] по платформам и статусам
func (s *Service) GetStats(ctx context.Context, req *models.GetStatsRequest) (*models.StatsResponse, error) {
	s.logger.Info("GetStats: period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}
	if req.To.Sub(req.From).Hours() > maxStatsRangeDays*24 {
		return nil, fmt.Errorf("%w: period is longer than %d days", ErrInvalidInput, maxStatsRangeDays)
	}

	stats, err := s.bookingRepo.GetStats(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("GetStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetStats - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStats: %d bookings in period", stats.Total)
	return models.FromDomainStats(stats), nil
}
