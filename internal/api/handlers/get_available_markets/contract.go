package get_available_markets

import "context"

type AvailabilityService interface {
	AvailableMarkets(ctx context.Context, service string, lookaheadDays int) ([]string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
