// Package cancel_bookings отмена всех активных бронирований клиента
// по номеру телефона. У клиента не бывает больше одного активного
// бронирования, но отмена все равно написана списком: так она чинит
// и те состояния, которые инвариант не должен был допустить.
package cancel_bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
)

// UseCase use case для отмены бронирований
type UseCase struct {
	slotRepo      SlotRepository
	directoryRepo DirectoryRepository
	notifier      NotifierClient
	txManager     TransactionManager
	referenceZone string
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	directoryRepo DirectoryRepository,
	notifierClient NotifierClient,
	txManager TransactionManager,
	referenceZone string,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		directoryRepo: directoryRepo,
		notifier:      notifierClient,
		txManager:     txManager,
		referenceZone: referenceZone,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case отмены бронирований.
// Все будущие booked слоты клиента возвращаются в bookable в одной
// сериализуемой транзакции; конкурирующее бронирование того же клиента
// либо увидит уже освобожденные слоты, либо будет отменено целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация и нормализация телефона
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	phone, err := domain.NormalizePhone(req.CustomerPhone)
	if err != nil {
		uc.logger.Warn("CancelBookings: phone normalization failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	uc.logger.Info("CancelBookings: phone=%s", phone)

	// 2. Вычисляем "сегодня": прошедшие встречи не отменяются
	today, err := datecalc.TodayIn(uc.timeProvider.Now(), uc.referenceZone)
	if err != nil {
		uc.logger.Error("CancelBookings: failed to resolve reference zone: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve reference zone: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var released []*domain.Slot

	// 3. Освобождаем слоты в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := uc.slotRepo.FindActiveBookingsByPhone(txCtx, phone, today)
		if err != nil {
			uc.logger.Error("CancelBookings: failed to find active bookings: %v", err)
			return fmt.Errorf("%w: failed to find active bookings: %v", ErrInternal, err)
		}

		for _, slot := range active {
			if err := uc.slotRepo.Release(txCtx, slot.ID); err != nil {
				uc.logger.Error("CancelBookings: failed to release slot id=%d: %v", slot.ID, err)
				return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
		}

		released = active
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBookings: phone=%s, %d booking(s) cancelled", phone, len(released))

	// 4. Собираем ответ и рассылаем уведомления после коммита
	cancelled := make([]CancelledSlot, 0, len(released))
	for _, slot := range released {
		item := CancelledSlot{
			SlotID:  slot.ID,
			AgentID: slot.AgentID,
			Date:    slot.Date,
			Time:    slot.Time,
		}

		agent, err := uc.directoryRepo.GetAgent(ctx, slot.AgentID)
		if err != nil {
			uc.logger.Warn("CancelBookings: failed to load agent %d for slot %d: %v", slot.AgentID, slot.ID, err)
			cancelled = append(cancelled, item)
			continue
		}
		item.AgentName = agent.Name

		branch, err := uc.directoryRepo.GetBranchByAgent(ctx, slot.AgentID)
		if err != nil {
			uc.logger.Warn("CancelBookings: failed to load branch for agent %d: %v", slot.AgentID, err)
			cancelled = append(cancelled, item)
			continue
		}

		uc.notifyCancelled(ctx, slot, agent, branch)
		cancelled = append(cancelled, item)
	}

	return &Response{
		CustomerPhone: phone,
		Cancelled:     cancelled,
	}, nil
}

// notifyCancelled отправляет уведомления агенту и клиенту в фоне
// с отвязанным контекстом. Слот уже освобожден; недоставленное
// уведомление логируется и не влияет на результат.
func (uc *UseCase) notifyCancelled(ctx context.Context, slot *domain.Slot, agent *domain.Agent, branch *domain.Branch) {
	detached := context.WithoutCancel(ctx)
	payload := notifier.FromSlot(slot, agent, branch)

	go func() {
		sendCtx, cancel := context.WithTimeout(detached, 10*time.Second)
		defer cancel()

		if err := uc.notifier.BookingCancelled(sendCtx, payload); err != nil {
			uc.logger.Warn("CancelBookings: agent notification failed for slot id=%d: %v", slot.ID, err)
		}
		if err := uc.notifier.CancelAcknowledged(sendCtx, payload); err != nil {
			uc.logger.Warn("CancelBookings: customer acknowledgement failed for slot id=%d: %v", slot.ID, err)
		}
	}()
}
