package create_booking

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-TeamsScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

// AttendeeRequest данные участника из формы
type AttendeeRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Platform        string          `json:"platform"`
	Attendee        AttendeeRequest `json:"attendee"`
	Date            string          `json:"date"`      // "2025-10-15", пусто = не выбрана
	StartTime       string          `json:"startTime"` // "10:00", пусто = не выбран
	DurationMinutes int             `json:"duration"`
	Notes           *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	*models.BookingResponse
	MeetingPending bool `json:"meetingPending"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые дата и время передаются как "не выбрано", их проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	req := &createBooking.Request{
		Platform:        r.Platform,
		Name:            r.Attendee.Name,
		Email:           r.Attendee.Email,
		Phone:           r.Attendee.Phone,
		Company:         r.Attendee.Company,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}

	if date := strings.TrimSpace(r.Date); date != "" {
		parsed, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			return nil, err
		}
		req.Date = parsed
	}

	if start := strings.TrimSpace(r.StartTime); start != "" {
		parsed, err := types.NewTimeStringFromString(start)
		if err != nil {
			return nil, err
		}
		req.StartTime = parsed
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking),
		MeetingPending:  resp.Booking.MeetingStatus == domain.MeetingPending,
	}
}
