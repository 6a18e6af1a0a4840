// Package reminders ежедневная рассылка напоминаний о завтрашних встречах.
package reminders

import (
	"context"
	"fmt"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
)

// Service сервис рассылки напоминаний
type Service struct {
	slotRepo      SlotRepository
	directoryRepo DirectoryRepository
	notifier      NotifierClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса напоминаний
func NewService(slotRepo SlotRepository, directoryRepo DirectoryRepository, notifierClient NotifierClient, logger Logger) *Service {
	return &Service{
		slotRepo:      slotRepo,
		directoryRepo: directoryRepo,
		notifier:      notifierClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// SendReminders отправляет напоминания по всем забронированным слотам,
// назначенным на завтра в таймзоне zone. "Завтра" вычисляется в той же
// зоне, поэтому задачу можно дергать по одному разу на каждую зону сети.
// Отказ отправки по одному слоту логируется и не прерывает остальные;
// возвращается число успешно отправленных напоминаний.
func (s *Service) SendReminders(ctx context.Context, zone string) (int, error) {
	if zone == "" {
		return 0, fmt.Errorf("%w: time zone is required", ErrInvalidInput)
	}

	// 1. Вычисляем завтрашнюю дату в целевой зоне
	tomorrow, err := datecalc.TomorrowIn(s.timeProvider.Now(), zone)
	if err != nil {
		return 0, fmt.Errorf("%w: SendReminders - resolve zone %q: %v", ErrInvalidInput, zone, err)
	}

	// 2. Забираем завтрашние брони филиалов этой зоны
	slots, err := s.slotRepo.ListBookedForDate(ctx, tomorrow, zone)
	if err != nil {
		s.logger.Error("SendReminders: failed to list booked slots for %s: %v", tomorrow.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: SendReminders - list booked slots: %v", ErrInternal, err)
	}

	// 3. Отправляем напоминание по каждому слоту
	sent := 0
	for _, slot := range slots {
		agent, err := s.directoryRepo.GetAgent(ctx, slot.AgentID)
		if err != nil {
			s.logger.Warn("SendReminders: failed to load agent %d for slot %d: %v", slot.AgentID, slot.ID, err)
			continue
		}

		branch, err := s.directoryRepo.GetBranchByAgent(ctx, slot.AgentID)
		if err != nil {
			s.logger.Warn("SendReminders: failed to load branch for agent %d: %v", slot.AgentID, err)
			continue
		}

		if err := s.notifier.Reminder(ctx, notifier.FromSlot(slot, agent, branch)); err != nil {
			s.logger.Warn("SendReminders: delivery failed for slot %d: %v", slot.ID, err)
			continue
		}
		sent++
	}

	s.logger.Info("SendReminders: zone %s, date %s, %d of %d reminders sent", zone, tomorrow.Format(domain.DateFormat), sent, len(slots))
	return sent, nil
}
