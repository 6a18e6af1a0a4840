package ensure_horizon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	"github.com/avilov/BOH-SchedulingService/internal/api/middleware"
	scheduleSvc "github.com/avilov/BOH-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidAgentID = "некорректный ID агента"
	msgAgentNotFound  = "агент не найден"
	msgAccessDenied   = "агент не управляет расписанием"
	msgForeignAgent   = "доступ к чужому расписанию запрещен"
)

// GenerateResponse HTTP response model
type GenerateResponse struct {
	AgentID       int64 `json:"agentId"`
	SlotsInserted int   `json:"slotsInserted"`
}

// ExtendResponse HTTP response model для массовой догенерации
type ExtendResponse struct {
	SlotsInserted int `json:"slotsInserted"`
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

// Handle POST /api/v1/agents/{agentId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	agentID, err := strconv.ParseInt(mux.Vars(r)["agentId"], 10, 64)
	if err != nil || agentID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidAgentID)
		return
	}

	if callerID, ok := middleware.AgentIDFromContext(r.Context()); ok && callerID != agentID {
		h.logger.Warn("POST /agents/{agentId}/slots/generate - Agent %d requested generation for agent %d", callerID, agentID)
		handlers.RespondError(w, http.StatusForbidden, msgForeignAgent)
		return
	}

	inserted, err := h.service.EnsureHorizon(r.Context(), agentID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleSvc.ErrAgentNotFound):
			h.logger.Warn("POST /agents/{agentId}/slots/generate - Agent not found: agent_id=%d", agentID)
			handlers.RespondNotFound(w, msgAgentNotFound)
		case errors.Is(err, scheduleSvc.ErrAccessDenied):
			h.logger.Warn("POST /agents/{agentId}/slots/generate - Access denied: agent_id=%d", agentID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)
		case errors.Is(err, scheduleSvc.ErrInvalidInput):
			h.logger.Warn("POST /agents/{agentId}/slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAgentID)
		default:
			h.logger.Error("POST /agents/{agentId}/slots/generate - Failed: agent_id=%d, error=%v", agentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agents/{agentId}/slots/generate - %d slot(s) inserted for agent %d", inserted, agentID)
	handlers.RespondJSON(w, http.StatusOK, GenerateResponse{
		AgentID:       agentID,
		SlotsInserted: inserted,
	})
}

// HandleExtend POST /internal/jobs/extend-horizon
// Дергается планировщиком раз в сутки, чтобы горизонт каждого агента
// всегда оставался полным.
func (h *Handler) HandleExtend(w http.ResponseWriter, r *http.Request) {
	inserted, err := h.service.ExtendHorizon(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/jobs/extend-horizon - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/jobs/extend-horizon - %d slot(s) inserted", inserted)
	handlers.RespondJSON(w, http.StatusOK, ExtendResponse{SlotsInserted: inserted})
}
