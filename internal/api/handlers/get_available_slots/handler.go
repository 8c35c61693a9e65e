package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TeamsScheduler/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "Please select a date"
	msgInvalidParams    = "Invalid date or duration, expected date=YYYY-MM-DD and duration in minutes"
	msgInvalidDuration  = "Please select one of the available durations"
	msgDateInPast       = "Bookings cannot be made for past dates"
	msgDateTooFar       = "The selected date is beyond the booking window"
	msgSlotsUnavailable = "Failed to load available times. Please try again."
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/scheduler/slots
// Query params: date (required, YYYY-MM-DD), duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /scheduler/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, r.URL.Query().Get("duration"))
	if err != nil {
		h.logger.Warn("GET /scheduler/slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDuration), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /scheduler/slots - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /scheduler/slots - Date in the past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /scheduler/slots - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /scheduler/slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgSlotsUnavailable)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /scheduler/slots - Slots retrieved successfully: date=%s, duration=%d, slots_count=%d",
		dateStr, result.DurationMinutes, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
