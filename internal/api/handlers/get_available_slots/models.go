package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TeamsScheduler/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Time        string `json:"time"`        // "09:00"
	EndTime     string `json:"endTime"`     // "10:00"
	DisplayTime string `json:"displayTime"` // "9:00 AM"
	Available   bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string         `json:"date"`
	Duration int            `json:"duration"`
	TimeZone string         `json:"timeZone"`
	Slots    []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров.
// Пустая длительность означает длительность по умолчанию.
func ToUseCaseRequest(dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		Date:            date,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:        s.Time.String(),
			EndTime:     s.EndTime.String(),
			DisplayTime: s.DisplayTime,
			Available:   true,
		})
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Duration: resp.DurationMinutes,
		TimeZone: resp.TimeZone,
		Slots:    slots,
	}
}
