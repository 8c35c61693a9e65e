package get_scheduler_config

import (
	"net/http"

	"github.com/m04kA/SMC-TeamsScheduler/internal/api/handlers"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/scheduler/config
// Публичный endpoint: настройки формы бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetPublicConfig()
	if err != nil {
		h.logger.Error("GET /scheduler/config - Failed to get config: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /scheduler/config - Config retrieved successfully: bookable %s..%s",
		result.BookableFrom, result.BookableUntil)
	handlers.RespondJSON(w, http.StatusOK, result)
}
