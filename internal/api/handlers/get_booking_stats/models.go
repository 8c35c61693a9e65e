package get_booking_stats

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос статистики из query параметров from и to (YYYY-MM-DD)
func ToServiceRequest(fromStr, toStr string) (*models.GetStatsRequest, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	return &models.GetStatsRequest{From: from, To: to}, nil
}
