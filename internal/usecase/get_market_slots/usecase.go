// Package get_market_slots четвертая ступень клиентской воронки:
// по услуге, рынку и желаемой дате показывает пятидневное окно
// свободных слотов по каждому филиалу рынка.
package get_market_slots

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
	"github.com/avilov/BOH-SchedulingService/pkg/ptr"
)

// UseCase use case для получения свободных слотов рынка
type UseCase struct {
	slotRepo      SlotRepository
	directoryRepo DirectoryRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, directoryRepo DirectoryRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		directoryRepo: directoryRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов рынка.
// Окно центрируется на запрошенной дате и прижимается к краям горизонта
// бронирования; завтра горизонта считается в таймзоне рынка, чтобы клиент
// с материка не увидел "вчерашние" гавайские слоты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if strings.TrimSpace(req.ServiceName) == "" {
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.MarketName) == "" {
		return nil, fmt.Errorf("%w: market name is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetMarketSlots: service=%s, market=%s, date=%s",
		req.ServiceName, req.MarketName, req.Date.Format(domain.DateFormat))

	// 2. Филиалы рынка, где есть агенты с этой услугой
	branches, err := uc.directoryRepo.ListBranchesForService(ctx, req.MarketName, req.ServiceName)
	if err != nil {
		uc.logger.Error("GetMarketSlots: failed to list branches: %v", err)
		return nil, fmt.Errorf("%w: failed to list branches: %v", ErrInternal, err)
	}
	if len(branches) == 0 {
		uc.logger.Info("GetMarketSlots: no branches offer %s in %s", req.ServiceName, req.MarketName)
		return &Response{
			ServiceName: req.ServiceName,
			MarketName:  req.MarketName,
			Days:        []time.Time{},
			Branches:    []domain.BranchSlotGrid{},
		}, nil
	}

	// 3. Окно дат: все филиалы рынка живут в одной таймзоне,
	// берем зону первого
	horizonStart, err := datecalc.TomorrowIn(uc.timeProvider.Now(), branches[0].TimeZone)
	if err != nil {
		uc.logger.Error("GetMarketSlots: failed to resolve zone %q: %v", branches[0].TimeZone, err)
		return nil, fmt.Errorf("%w: failed to resolve market zone: %v", ErrInternal, err)
	}

	window := domain.SelectWindow(datecalc.DateOnly(req.Date), horizonStart)

	// 4. Сетка свободных слотов по каждому филиалу
	grids := make([]domain.BranchSlotGrid, 0, len(branches))
	for _, branch := range branches {
		filter := domain.SlotFilter{
			BranchID:    ptr.Ptr(branch.ID),
			ServiceName: ptr.Ptr(req.ServiceName),
			State:       ptr.Ptr(domain.StateBookable),
			DateFrom:    ptr.Ptr(window.Start),
			DateTo:      ptr.Ptr(window.End),
		}

		slots, err := uc.slotRepo.ListWithFilter(ctx, filter)
		if err != nil {
			uc.logger.Error("GetMarketSlots: failed to list slots for branch %d: %v", branch.ID, err)
			return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		grids = append(grids, domain.BranchSlotGrid{
			BranchID:      branch.ID,
			BranchName:    branch.Name,
			BranchAddress: branch.Address,
			Grid:          domain.BuildGrid(slots, &window),
		})
	}

	return &Response{
		ServiceName: req.ServiceName,
		MarketName:  req.MarketName,
		Days:        window.Days(),
		Branches:    grids,
	}, nil
}
