package get_agent_slots

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
)

const (
	msgInvalidAgentID = "некорректный ID агента"
	msgInvalidRange   = "некорректный диапазон дат, ожидается YYYY-MM-DD"
	msgAgentNotFound  = "агент не найден"
	msgForeignAgent   = "доступ к чужому расписанию запрещен"
)

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

// Handle GET /api/v1/agents/{agentId}/slots?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agentID, err := strconv.ParseInt(mux.Vars(r)["agentId"], 10, 64)
	if err != nil || agentID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	// Агент видит только собственное расписание
	if callerID, ok := middleware.AgentIDFromContext(r.Context()); ok && callerID != agentID {
		h.logger.Warn("GET /agents/{agentId}/slots - Agent %d requested slots of agent %d", callerID, agentID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignAgent)
		return
	}

	from, err := parseOptionalDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := parseOptionalDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	view, err := h.service.AgentSlots(r.Context(), agentID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrAgentNotFound):
			h.logger.Warn("GET /agents/{agentId}/slots - Agent not found: agent_id=%d", agentID)
			handlers.RespondNotFound(w, msgAgentNotFound)
		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("GET /agents/{agentId}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
		default:
			h.logger.Error("GET /agents/{agentId}/slots - Failed to get slots: agent_id=%d, error=%v", agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(view))
}

func parseOptionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
