package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

// minutesPerDay конец суток для календарных событий
const minutesPerDay = 24 * 60

// Service считает доступные слоты по текущим бронированиям
type Service struct {
	view         BookingView
	calendar     CalendarClient
	cfg          domain.SchedulerConfig
	storeTimeout time.Duration
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис доступности.
// calendar и metrics могут быть nil.
func NewService(
	view BookingView,
	calendar CalendarClient,
	cfg domain.SchedulerConfig,
	storeTimeout time.Duration,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		view:         view,
		calendar:     calendar,
		cfg:          cfg,
		storeTimeout: storeTimeout,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Config возвращает политику расписания, с которой работает сервис
func (s *Service) Config() domain.SchedulerConfig {
	return s.cfg
}

// Now текущее время сервиса
func (s *Service) Now() time.Time {
	return s.timeProvider.Now()
}

// GetSlots возвращает доступные слоты на дату для длительности durationMinutes
func (s *Service) GetSlots(ctx context.Context, date time.Time, durationMinutes int) ([]domain.TimeSlot, error) {
	now := s.timeProvider.Now()

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	bookings, err := s.view.GetBookingsForDate(storeCtx, date)
	if err != nil {
		s.logger.Error("GetSlots: failed to load bookings for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrBookingsUnavailable, err)
	}

	if s.calendar != nil {
		bookings = append(bookings, s.calendarBusy(ctx, date)...)
	}

	slots := ComputeAvailableSlots(date, durationMinutes, bookings, s.cfg, now)

	if s.metrics != nil {
		s.metrics.ObserveSlots(durationMinutes, len(slots))
	}

	return slots, nil
}

// calendarBusy превращает занятые события календаря организатора в псевдо-бронирования на дату.
// Ошибки календаря не блокируют выдачу слотов.
func (s *Service) calendarBusy(ctx context.Context, date time.Time) []*domain.Booking {
	loc := s.cfg.Loc()
	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	calCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	events, err := s.calendar.ListCalendarEvents(calCtx, dayStart, dayEnd)
	if err != nil {
		s.logger.Warn("GetSlots: calendar unavailable for %s, using bookings only: %v", date.Format(domain.DateFormat), err)
		return nil
	}

	busy := make([]*domain.Booking, 0, len(events))
	for _, ev := range events {
		if !ev.IsBusy() {
			continue
		}

		start := ev.Start.In(loc)
		end := ev.End.In(loc)
		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		if !end.After(start) {
			continue
		}

		// Минуты по часам зоны расписания: в дни перехода на летнее время сутки длиннее или короче 24 часов
		startMinutes := 0
		if start.After(dayStart) {
			startMinutes = types.WallMinutes(start, loc)
		}
		endMinutes := minutesPerDay
		if end.Before(dayEnd) {
			endMinutes = types.WallMinutes(end, loc)
			if end.Truncate(time.Minute).Before(end) {
				endMinutes++
			}
		}
		if endMinutes <= startMinutes {
			continue
		}

		startTime, errStart := types.FromMinutes(startMinutes)
		endTime, errEnd := types.FromMinutes(endMinutes)
		if errStart != nil || errEnd != nil {
			s.logger.Warn("GetSlots: skipping calendar event %s with unexpected bounds %d-%d", ev.ID, startMinutes, endMinutes)
			continue
		}

		busy = append(busy, &domain.Booking{
			Date:            dayStart,
			StartTime:       startTime,
			EndTime:         endTime,
			DurationMinutes: endMinutes - startMinutes,
			Status:          domain.StatusScheduled,
		})
	}

	return busy
}
