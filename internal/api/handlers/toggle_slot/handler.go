package toggle_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	"github.com/avilov/BOH-SchedulingService/internal/api/middleware"
	"github.com/avilov/BOH-SchedulingService/internal/domain"
	scheduleSvc "github.com/avilov/BOH-SchedulingService/internal/service/schedule"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

const (
	msgInvalidAgentID     = "некорректный ID агента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidState       = "переключать можно только состояния bookable и held"
	msgSlotNotFound       = "слот не найден или его состояние изменилось"
	msgForeignAgent       = "доступ к чужому расписанию запрещен"
)

// ToggleSlotRequest HTTP request model.
// CurrentState - состояние, которое агент видел на экране; несовпадение
// с фактическим означает, что слот успели изменить, и переключение
// отклоняется.
type ToggleSlotRequest struct {
	Date         string `json:"date"` // "2026-01-15"
	Time         string `json:"time"` // "10:00"
	CurrentState string `json:"currentState"`
}

// ToggleSlotResponse HTTP response model
type ToggleSlotResponse struct {
	AgentID  int64  `json:"agentId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	NewState string `json:"newState"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/agents/{agentId}/slots/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agentID, err := strconv.ParseInt(mux.Vars(r)["agentId"], 10, 64)
	if err != nil || agentID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	if callerID, ok := middleware.AgentIDFromContext(r.Context()); ok && callerID != agentID {
		h.logger.Warn("PATCH /agents/{agentId}/slots/toggle - Agent %d toggled slot of agent %d", callerID, agentID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignAgent)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /agents/{agentId}/slots/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	t, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	currentState := domain.SlotState(req.CurrentState)
	if currentState != domain.StateBookable && currentState != domain.StateHeld {
		handlers.RespondBadRequest(w, msgInvalidState)
		return
	}

	if err := h.service.ToggleSlot(r.Context(), agentID, date, t, currentState); err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrSlotNotFound):
			h.logger.Warn("PATCH /agents/{agentId}/slots/toggle - Slot not found: agent_id=%d, date=%s, time=%s",
				agentID, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotFound)
		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("PATCH /agents/{agentId}/slots/toggle - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidState)
		default:
			h.logger.Error("PATCH /agents/{agentId}/slots/toggle - Failed to toggle: agent_id=%d, error=%v", agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	newState := domain.StateHeld
	if currentState == domain.StateHeld {
		newState = domain.StateBookable
	}

	h.logger.Info("PATCH /agents/{agentId}/slots/toggle - Slot toggled: agent_id=%d, date=%s, time=%s, new_state=%s",
		agentID, req.Date, req.Time, newState)
	handlers.RespondJSON(w, http.StatusOK, ToggleSlotResponse{
		AgentID:  agentID,
		Date:     req.Date,
		Time:     req.Time,
		NewState: string(newState),
	})
}
