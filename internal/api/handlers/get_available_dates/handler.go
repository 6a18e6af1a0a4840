package get_available_dates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	"github.com/avilov/BOH-SchedulingService/internal/domain"
	availabilitySvc "github.com/avilov/BOH-SchedulingService/internal/service/availability"
)

const (
	msgInvalidParams    = "не указана услуга или рынок"
	msgInvalidLookahead = "некорректное значение lookaheadDays"
)

// DatesResponse HTTP response model
type DatesResponse struct {
	Service string   `json:"service"`
	Market  string   `json:"market"`
	Dates   []string `json:"dates"` // "2026-01-15"
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

// Handle GET /api/v1/services/{serviceName}/markets/{marketName}/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceName := vars["serviceName"]
	marketName := vars["marketName"]
	if serviceName == "" || marketName == "" {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	lookaheadDays := 0
	if raw := r.URL.Query().Get("lookaheadDays"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			h.logger.Warn("GET .../dates - Invalid lookaheadDays: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLookahead)
			return
		}
		lookaheadDays = days
	}

	dates, err := h.service.AvailableDates(r.Context(), serviceName, marketName, lookaheadDays)
	if err != nil {
		switch {
		case errors.Is(err, availabilitySvc.ErrInvalidInput):
			h.logger.Warn("GET .../dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET .../dates - Failed to get dates: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(domain.DateFormat))
	}

	handlers.RespondJSON(w, http.StatusOK, DatesResponse{
		Service: serviceName,
		Market:  marketName,
		Dates:   formatted,
	})
}
