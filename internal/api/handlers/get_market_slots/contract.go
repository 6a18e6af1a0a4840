package get_market_slots

import (
	"context"

	getMarketSlots "github.com/avilov/BOH-SchedulingService/internal/usecase/get_market_slots"
)

type GetMarketSlotsUseCase interface {
	Execute(ctx context.Context, req *getMarketSlots.Request) (*getMarketSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
