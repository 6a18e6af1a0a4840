package toggle_slot

import (
	"context"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

type ScheduleService interface {
	ToggleSlot(ctx context.Context, agentID int64, date time.Time, t types.TimeString, currentState domain.SlotState) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
