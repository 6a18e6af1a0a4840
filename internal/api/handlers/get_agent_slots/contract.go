package get_agent_slots

import (
	"context"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
)

type ScheduleService interface {
	AgentSlots(ctx context.Context, agentID int64, from, to *time.Time) (*domain.AgentSlotView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
