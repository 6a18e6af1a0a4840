package get_available_dates

import (
	"context"
	"time"
)

type AvailabilityService interface {
	AvailableDates(ctx context.Context, service, market string, lookaheadDays int) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
