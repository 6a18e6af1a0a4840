package schedule

import (
	"context"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/identity"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов для операций с расписанием
type SlotRepository interface {
	InsertMissing(ctx context.Context, agentID int64, date time.Time, t types.TimeString) (bool, error)
	CountFutureByAgent(ctx context.Context, agentID int64, today time.Time) (int, error)
	ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	ToggleState(ctx context.Context, agentID int64, date time.Time, t types.TimeString, from, to domain.SlotState) error
}

// DirectoryRepository интерфейс справочника агентов и филиалов
type DirectoryRepository interface {
	GetAgent(ctx context.Context, agentID int64) (*domain.Agent, error)
	GetBranchByAgent(ctx context.Context, agentID int64) (*domain.Branch, error)
	ListScheduleOwnerIDs(ctx context.Context) ([]int64, error)
}

// IdentityClient интерфейс клиента справочника сотрудников
type IdentityClient interface {
	GetAgentRole(ctx context.Context, agentID int64) (*identity.AgentRole, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
