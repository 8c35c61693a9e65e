package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-TeamsScheduler/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidDateOrTime  = "Invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgValidationFailed   = "Please correct the highlighted fields"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/scheduler/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /scheduler/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /scheduler/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createBooking.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /scheduler/bookings - Validation failed: %v", validationErr.Messages)
			handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgValidationFailed, validationErr.Messages)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /scheduler/bookings - Slot not available: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, createBooking.MessageSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidData):
			h.logger.Warn("POST /scheduler/bookings - Invalid booking data: %v", err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, createBooking.MessageInvalidData)

		default:
			h.logger.Error("POST /scheduler/bookings - Failed to create booking: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondError(w, http.StatusInternalServerError, createBooking.MessageInternal)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /scheduler/bookings - Booking created successfully: booking_id=%s, meeting=%s",
		result.Booking.ID, result.Booking.MeetingStatus)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
