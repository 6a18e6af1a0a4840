package get_available_services

import "context"

type AvailabilityService interface {
	AvailableServices(ctx context.Context, lookaheadDays int) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
