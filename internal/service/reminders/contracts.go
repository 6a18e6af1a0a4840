package reminders

import (
	"context"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов для рассылки напоминаний
type SlotRepository interface {
	ListBookedForDate(ctx context.Context, date time.Time, zone string) ([]*domain.Slot, error)
}

// DirectoryRepository интерфейс справочника агентов и филиалов
type DirectoryRepository interface {
	GetAgent(ctx context.Context, agentID int64) (*domain.Agent, error)
	GetBranchByAgent(ctx context.Context, agentID int64) (*domain.Branch, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Reminder(ctx context.Context, n *notifier.Notification) error
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
