package models

import (
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// Request модели

// GetStatsRequest запрос статистики бронирований за период
type GetStatsRequest struct {
	From time.Time
	To   time.Time
}

// Response модели

// AttendeeResponse данные участника
type AttendeeResponse struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

// MeetingResponse состояние онлайн-встречи
type MeetingResponse struct {
	Status  string  `json:"status"`
	JoinURL *string `json:"joinUrl,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string           `json:"id"`
	Platform        string           `json:"platform"`
	Attendee        AttendeeResponse `json:"attendee"`
	Date            string           `json:"date"`        // "2025-10-15"
	StartTime       string           `json:"startTime"`   // "10:00"
	EndTime         string           `json:"endTime"`     // "11:00"
	DisplayTime     string           `json:"displayTime"` // "10:00 AM"
	DurationMinutes int              `json:"durationMinutes"`
	TimeZone        string           `json:"timeZone"`
	Status          string           `json:"status"`
	TrainerEmail    *string          `json:"trainerEmail,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Meeting         MeetingResponse  `json:"meeting"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// StatsResponse статистика бронирований за период
type StatsResponse struct {
	From       string         `json:"from"`
	To         string         `json:"to"`
	Total      int            `json:"total"`
	ByPlatform map[string]int `json:"byPlatform"`
	ByStatus   map[string]int `json:"byStatus"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:       b.ID.String(),
		Platform: b.Platform,
		Attendee: AttendeeResponse{
			Name:    b.Attendee.Name,
			Email:   b.Attendee.Email,
			Phone:   b.Attendee.Phone,
			Company: b.Attendee.Company,
		},
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DisplayTime:     b.StartTime.Display(),
		DurationMinutes: b.DurationMinutes,
		TimeZone:        b.TimeZone,
		Status:          string(b.Status),
		TrainerEmail:    b.OrganizerEmail,
		Notes:           b.Notes,
		Meeting: MeetingResponse{
			Status:  string(b.MeetingStatus),
			JoinURL: b.MeetingJoinURL,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	resp := &StatsResponse{
		From:       s.From.Format(domain.DateFormat),
		To:         s.To.Format(domain.DateFormat),
		Total:      s.Total,
		ByPlatform: make(map[string]int, len(s.ByPlatform)),
		ByStatus:   make(map[string]int, len(s.ByStatus)),
	}

	for platform, count := range s.ByPlatform {
		resp.ByPlatform[platform] = count
	}
	for status, count := range s.ByStatus {
		resp.ByStatus[string(status)] = count
	}

	return resp
}
