package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	storagedirectory "github.com/avilov/BOH-SchedulingService/internal/infra/storage/directory"
	storageslot "github.com/avilov/BOH-SchedulingService/internal/infra/storage/slot"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo      SlotRepository
	directoryRepo DirectoryRepository
	notifier      NotifierClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	directoryRepo DirectoryRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		directoryRepo: directoryRepo,
		notifier:      notifierClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка "у клиента не больше одного активного бронирования" и захват
// слота выполняются в одной сериализуемой транзакции, поэтому две
// конкурирующие попытки не могут забронировать один слот или провести
// клиента мимо лимита.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: agent=%d, date=%s, time=%s",
		req.AgentID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем телефон клиента
	phone, err := normalizePhone(req.CustomerPhone)
	if err != nil {
		uc.logger.Warn("CreateBooking: phone normalization failed: %v", err)
		return nil, err
	}

	// 3. Получаем агента и его филиал
	agent, err := uc.directoryRepo.GetAgent(ctx, req.AgentID)
	if err != nil {
		if errors.Is(err, storagedirectory.ErrAgentNotFound) {
			uc.logger.Warn("CreateBooking: agent id=%d not found", req.AgentID)
			return nil, ErrAgentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get agent id=%d: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: failed to get agent: %v", ErrInternal, err)
	}

	branch, err := uc.directoryRepo.GetBranchByAgent(ctx, req.AgentID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get branch for agent id=%d: %v", req.AgentID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 4. Проверяем дату против горизонта бронирования в зоне филиала
	now := uc.timeProvider.Now()

	today, err := datecalc.TodayIn(now, branch.TimeZone)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve branch zone %q: %v", branch.TimeZone, err)
		return nil, fmt.Errorf("%w: failed to resolve branch zone: %v", ErrInternal, err)
	}

	date := datecalc.DateOnly(req.Date)
	horizonStart := today.AddDate(0, 0, 1)
	if err := validateDate(date, horizonStart); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var claimed *domain.Slot

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем, что у клиента нет активного бронирования (FOR UPDATE)
		active, err := uc.slotRepo.FindActiveBookingsByPhone(txCtx, phone, today)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check active bookings: %v", err)
			return fmt.Errorf("%w: failed to check active bookings: %v", ErrInternal, err)
		}
		if len(active) > 0 {
			uc.logger.Warn("CreateBooking: customer %s already has %d active booking(s)", phone, len(active))
			return ErrCustomerHasActiveBooking
		}

		// 5.2. Атомарно захватываем слот
		slot, err := uc.slotRepo.Claim(txCtx, req.AgentID, date, req.Time, phone, req.CustomerName, req.Topic, now)
		if err != nil {
			if errors.Is(err, storageslot.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot agent=%d, %s %s is not available",
					req.AgentID, date.Format(domain.DateFormat), req.Time)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to claim slot: %v", err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		claimed = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully booked slot id=%d", claimed.ID)

	// 6. Уведомление отправляем после коммита и вне запроса: бронирование
	// состоялось независимо от того, дойдет ли письмо
	uc.notifyConfirmed(ctx, claimed, agent, branch)

	bookedAt := now
	if claimed.BookedAt != nil {
		bookedAt = *claimed.BookedAt
	}

	return &Response{
		SlotID:        claimed.ID,
		AgentID:       agent.ID,
		AgentName:     agent.Name,
		BranchName:    branch.Name,
		BranchAddress: branch.Address,
		Date:          claimed.Date,
		Time:          claimed.Time,
		State:         string(claimed.State),
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		Topic:         req.Topic,
		BookedAt:      bookedAt,
	}, nil
}

// notifyConfirmed отправляет подтверждение в фоне с отвязанным контекстом,
// чтобы завершение HTTP запроса не оборвало доставку
func (uc *UseCase) notifyConfirmed(ctx context.Context, slot *domain.Slot, agent *domain.Agent, branch *domain.Branch) {
	detached := context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(detached, 10*time.Second)
		defer cancel()

		if err := uc.notifier.BookingConfirmed(sendCtx, notifier.FromSlot(slot, agent, branch)); err != nil {
			uc.logger.Warn("CreateBooking: confirmation delivery failed for slot id=%d: %v", slot.ID, err)
		}
	}()
}
