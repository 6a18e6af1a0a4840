package get_market_slots

import (
	"context"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
}

// DirectoryRepository интерфейс справочника филиалов
type DirectoryRepository interface {
	ListBranchesForService(ctx context.Context, marketName, serviceName string) ([]*domain.Branch, error)
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
