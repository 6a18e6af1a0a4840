package get_available_markets

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	availabilitySvc "github.com/avilov/BOH-SchedulingService/internal/service/availability"
)

const (
	msgInvalidService   = "не указано название услуги"
	msgInvalidLookahead = "некорректное значение lookaheadDays"
)

// MarketsResponse HTTP response model
type MarketsResponse struct {
	Service string   `json:"service"`
	Markets []string `json:"markets"`
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

// Handle GET /api/v1/services/{serviceName}/markets
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceName := mux.Vars(r)["serviceName"]
	if serviceName == "" {
		handlers.RespondBadRequest(w, msgInvalidService)
		return
	}

	lookaheadDays := 0
	if raw := r.URL.Query().Get("lookaheadDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			h.logger.Warn("GET /services/{serviceName}/markets - Invalid lookaheadDays: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLookahead)
			return
		}
		lookaheadDays = days
	}

	markets, err := h.service.AvailableMarkets(r.Context(), serviceName, lookaheadDays)
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrInvalidInput):
			h.logger.Warn("GET /services/{serviceName}/markets - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidService)
		default:
			h.logger.Error("GET /services/{serviceName}/markets - Failed to get markets: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, MarketsResponse{
		Service: serviceName,
		Markets: markets,
	})
}
