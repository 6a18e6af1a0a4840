package cancel_bookings

import (
	"errors"
	"net/http"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	"github.com/avilov/BOH-SchedulingService/internal/domain"
	cancelBookings "github.com/avilov/BOH-SchedulingService/internal/usecase/cancel_bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPhone       = "некорректный номер телефона"
)

// CancelBookingsRequest HTTP request model
type CancelBookingsRequest struct {
	CustomerPhone string `json:"customerPhone"`
}

// CancelledSlotResponse описание одного отмененного бронирования
type CancelledSlotResponse struct {
	SlotID    int64  `json:"slotId"`
	AgentID   int64  `json:"agentId"`
	AgentName string `json:"agentName,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// CancelBookingsResponse HTTP response model
type CancelBookingsResponse struct {
	CustomerPhone string                  `json:"customerPhone"`
	Cancelled     []CancelledSlotResponse `json:"cancelled"`
}

type Handler struct {
	useCase CancelBookingsUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CancelBookingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBookings.Request{
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBookings.ErrInvalidPhone):
			h.logger.Warn("POST /bookings/cancel - Invalid phone: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, cancelBookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/cancel - Failed to cancel bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Отмена без активных бронирований - нормальный исход, отвечаем 200
	cancelled := make([]CancelledSlotResponse, 0, len(result.Cancelled))
	for _, c := range result.Cancelled {
		cancelled = append(cancelled, CancelledSlotResponse{
			SlotID:    c.SlotID,
			AgentID:   c.AgentID,
			AgentName: c.AgentName,
			Date:      c.Date.Format(domain.DateFormat),
			Time:      c.Time.String(),
		})
	}

	h.logger.Info("POST /bookings/cancel - %d booking(s) cancelled", len(cancelled))
	handlers.RespondJSON(w, http.StatusOK, CancelBookingsResponse{
		CustomerPhone: result.CustomerPhone,
		Cancelled:     cancelled,
	})
}
