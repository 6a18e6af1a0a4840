package get_available_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	availabilitySvc "github.com/avilov/BOH-SchedulingService/internal/service/availability"
)

const (
	msgInvalidLookahead = "некорректное значение lookaheadDays"
)

// ServicesResponse HTTP response model
type ServicesResponse struct {
	Services []string `json:"services"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lookaheadDays, err := parseLookahead(r)
	if err != nil {
		h.logger.Warn("GET /services - Invalid lookaheadDays: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLookahead)
		return
	}

	services, err := h.service.AvailableServices(r.Context(), lookaheadDays)
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrInvalidInput):
			h.logger.Warn("GET /services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLookahead)
		default:
			h.logger.Error("GET /services - Failed to get available services: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Пустой список означает, что свободных слотов сейчас нет; это не ошибка
	handlers.RespondJSON(w, http.StatusOK, ServicesResponse{Services: services})
}

// parseLookahead читает необязательный параметр lookaheadDays.
// Ноль означает "использовать значение по умолчанию".
func parseLookahead(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("lookaheadDays")
	if raw == "" {
		return 0, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if days <= 0 {
		return 0, errors.New("lookaheadDays must be positive")
	}

	return days, nil
}
