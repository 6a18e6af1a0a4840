package ensure_horizon

import "context"

type ScheduleService interface {
	EnsureHorizon(ctx context.Context, agentID int64) (int, error)
	ExtendHorizon(ctx context.Context) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
