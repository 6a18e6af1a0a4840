package get_market_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	"github.com/avilov/BOH-SchedulingService/internal/domain"
	getMarketSlots "github.com/avilov/BOH-SchedulingService/internal/usecase/get_market_slots"
)

const (
	msgInvalidParams = "не указана услуга или рынок"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetMarketSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetMarketSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceName}/markets/{marketName}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceName := vars["serviceName"]
	marketName := vars["marketName"]
	if serviceName == "" || marketName == "" {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET .../slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getMarketSlots.Request{
		ServiceName: serviceName,
		MarketName:  marketName,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getMarketSlots.ErrInvalidInput):
			h.logger.Warn("GET .../slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET .../slots - Failed to get market slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
