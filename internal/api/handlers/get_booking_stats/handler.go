package get_booking_stats

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings"
)

const (
	msgInvalidParams = "Invalid period, expected from=YYYY-MM-DD and to=YYYY-MM-DD"
	msgInvalidPeriod = "Invalid period, to must not be before from and the period must not exceed one year"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/scheduler/bookings/stats
// Query params: from, to (обязательные, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /scheduler/bookings/stats - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetStats(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /scheduler/bookings/stats - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /scheduler/bookings/stats - Failed to get stats: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /scheduler/bookings/stats - Stats retrieved successfully: from=%s, to=%s, total=%d",
		result.From, result.To, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
