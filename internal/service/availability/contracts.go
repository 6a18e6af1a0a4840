package availability

import (
	"context"
	"time"
)

// SlotRepository интерфейс репозитория слотов для запросов воронки
type SlotRepository interface {
	DistinctServiceNames(ctx context.Context, dateAfter, dateTo time.Time) ([]string, error)
	DistinctMarketNames(ctx context.Context, serviceName string, dateAfter, dateTo time.Time) ([]string, error)
	DistinctDates(ctx context.Context, serviceName, marketName string, dateAfter, dateTo time.Time) ([]time.Time, error)
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
