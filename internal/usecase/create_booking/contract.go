package create_booking

import (
	"context"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Claim(ctx context.Context, agentID int64, date time.Time, t types.TimeString, phone, name, topic string, bookedAt time.Time) (*domain.Slot, error)
	FindActiveBookingsByPhone(ctx context.Context, phone string, after time.Time) ([]*domain.Slot, error)
}

// DirectoryRepository интерфейс справочника агентов и филиалов
type DirectoryRepository interface {
	GetAgent(ctx context.Context, agentID int64) (*domain.Agent, error)
	GetBranchByAgent(ctx context.Context, agentID int64) (*domain.Branch, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	BookingConfirmed(ctx context.Context, n *notifier.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
