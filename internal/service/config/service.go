package config

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/config/models"
)

// Service отдает публичное представление политики расписания для формы бронирования
type Service struct {
	cfg          domain.SchedulerConfig
	timeProvider TimeProvider
}

// NewService создает сервис конфигурации
func NewService(cfg domain.SchedulerConfig) *Service {
	return &Service{
		cfg:          cfg,
		timeProvider: &RealTimeProvider{},
	}
}

// GetPublicConfig возвращает настройки расписания и диапазон дат, доступных для бронирования сегодня
func (s *Service) GetPublicConfig() (*models.ConfigResponse, error) {
	if s.cfg.BusinessHours.Start.Minutes() < 0 || s.cfg.BusinessHours.End.Minutes() < 0 {
		return nil, fmt.Errorf("%w: business hours %s-%s", ErrInvalidConfig, s.cfg.BusinessHours.Start, s.cfg.BusinessHours.End)
	}

	now := s.timeProvider.Now()

	excluded := make([]string, 0, len(s.cfg.ExcludedDates))
	for date := range s.cfg.ExcludedDates {
		excluded = append(excluded, date)
	}
	sort.Strings(excluded)

	durations := make([]int, len(s.cfg.AvailableDurations))
	copy(durations, s.cfg.AvailableDurations)

	resp := &models.ConfigResponse{
		BusinessHours:        models.FromDomainRange(s.cfg.BusinessHours),
		SlotIntervalMinutes:  s.cfg.SlotIntervalMinutes,
		PaddingMinutes:       s.cfg.PaddingMinutes,
		MaxBookingDaysAhead:  s.cfg.MaxBookingDaysAhead,
		MinBookingHoursAhead: s.cfg.MinBookingHoursAhead,
		ExcludeWeekends:      s.cfg.ExcludeWeekends,
		ExcludedDates:        excluded,
		AvailableDurations:   durations,
		DefaultDuration:      s.cfg.DefaultDuration,
		TimeZone:             s.cfg.TimeZone,
		BookableFrom:         s.cfg.Today(now).Format(domain.DateFormat),
		BookableUntil:        s.cfg.LastBookableDate(now).Format(domain.DateFormat),
	}

	if s.cfg.LunchBreak != nil {
		lunch := models.FromDomainRange(*s.cfg.LunchBreak)
		resp.LunchBreak = &lunch
	}

	return resp, nil
}
