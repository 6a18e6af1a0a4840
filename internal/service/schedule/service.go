// Package schedule операции агента над собственным расписанием:
// генерация горизонта слотов, просмотр сетки и переключение
// доступности отдельных слотов.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	storagedirectory "github.com/avilov/BOH-SchedulingService/internal/infra/storage/directory"
	storageslot "github.com/avilov/BOH-SchedulingService/internal/infra/storage/slot"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/identity"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
	"github.com/avilov/BOH-SchedulingService/pkg/ptr"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// Service сервис управления расписанием агентов
type Service struct {
	slotRepo      SlotRepository
	directoryRepo DirectoryRepository
	identity      IdentityClient
	horizonDays   int
	startHour     int
	endHour       int
	referenceZone string
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slotRepo SlotRepository,
	directoryRepo DirectoryRepository,
	identityClient IdentityClient,
	horizonDays, startHour, endHour int,
	referenceZone string,
	logger Logger,
) *Service {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultHorizonDays
	}
	if startHour <= 0 {
		startHour = domain.DefaultStartHour
	}
	if endHour <= 0 {
		endHour = domain.DefaultEndHour
	}

	return &Service{
		slotRepo:      slotRepo,
		directoryRepo: directoryRepo,
		identity:      identityClient,
		horizonDays:   horizonDays,
		startHour:     startHour,
		endHour:       endHour,
		referenceZone: referenceZone,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// EnsureHorizon догенерирует слоты агента до полного горизонта.
// Возвращает число реально вставленных слотов; повторный вызов
// на полном горизонте возвращает 0.
func (s *Service) EnsureHorizon(ctx context.Context, agentID int64) (int, error) {
	if agentID <= 0 {
		return 0, fmt.Errorf("%w: agent id must be positive", ErrInvalidInput)
	}

	// 1. Проверяем право агента управлять расписанием
	role, err := s.identity.GetAgentRole(ctx, agentID)
	if err != nil {
		if errors.Is(err, identity.ErrAgentNotFound) {
			return 0, fmt.Errorf("%w: EnsureHorizon - agent %d", ErrAgentNotFound, agentID)
		}
		s.logger.Error("EnsureHorizon: identity error for agent %d: %v", agentID, err)
		return 0, fmt.Errorf("%w: EnsureHorizon - identity check: %v", ErrInternal, err)
	}
	if !role.CanManageSchedule() {
		return 0, fmt.Errorf("%w: EnsureHorizon - agent %d", ErrAccessDenied, agentID)
	}

	// 2. Генерируем недостающие слоты
	inserted, err := s.ensureForAgent(ctx, agentID)
	if err != nil {
		return 0, err
	}

	s.logger.Info("EnsureHorizon: agent %d, %d slots inserted", agentID, inserted)
	return inserted, nil
}

// AgentSlots возвращает сетку слотов агента (времена на даты).
// Если у агента нет ни одного будущего слота, горизонт генерируется
// лениво прямо здесь, чтобы новый агент сразу увидел рабочее расписание.
func (s *Service) AgentSlots(ctx context.Context, agentID int64, from, to *time.Time) (*domain.AgentSlotView, error) {
	if agentID <= 0 {
		return nil, fmt.Errorf("%w: agent id must be positive", ErrInvalidInput)
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: date range is inverted", ErrInvalidInput)
	}

	// 1. Загружаем агента и его филиал
	agent, err := s.directoryRepo.GetAgent(ctx, agentID)
	if err != nil {
		if errors.Is(err, storagedirectory.ErrAgentNotFound) {
			return nil, fmt.Errorf("%w: AgentSlots - agent %d", ErrAgentNotFound, agentID)
		}
		s.logger.Error("AgentSlots: failed to load agent %d: %v", agentID, err)
		return nil, fmt.Errorf("%w: AgentSlots - load agent: %v", ErrInternal, err)
	}

	branch, err := s.directoryRepo.GetBranchByAgent(ctx, agentID)
	if err != nil {
		s.logger.Error("AgentSlots: failed to load branch for agent %d: %v", agentID, err)
		return nil, fmt.Errorf("%w: AgentSlots - load branch: %v", ErrInternal, err)
	}

	// 2. Ленивая генерация: у нового агента еще нет будущих слотов
	today, err := datecalc.TodayIn(s.timeProvider.Now(), branch.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: AgentSlots - resolve branch zone: %v", ErrInternal, err)
	}

	future, err := s.slotRepo.CountFutureByAgent(ctx, agentID, today)
	if err != nil {
		s.logger.Error("AgentSlots: failed to count future slots for agent %d: %v", agentID, err)
		return nil, fmt.Errorf("%w: AgentSlots - count future slots: %v", ErrInternal, err)
	}
	if future == 0 {
		inserted, err := s.ensureForAgent(ctx, agentID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("AgentSlots: lazy generation for agent %d, %d slots inserted", agentID, inserted)
	}

	// 3. Выбираем слоты и собираем сетку
	filter := domain.SlotFilter{
		AgentID:  ptr.Ptr(agentID),
		DateFrom: from,
		DateTo:   to,
	}

	slots, err := s.slotRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("AgentSlots: failed to list slots for agent %d: %v", agentID, err)
		return nil, fmt.Errorf("%w: AgentSlots - list slots: %v", ErrInternal, err)
	}

	return &domain.AgentSlotView{
		AgentID:       agent.ID,
		AgentName:     agent.Name,
		BranchName:    branch.Name,
		BranchAddress: branch.Address,
		Grid:          domain.BuildGrid(slots, nil),
	}, nil
}

// ToggleSlot переключает слот между состояниями bookable и held.
// Вызывающий передает состояние, которое он видел на экране; если слот
// уже в другом состоянии (например, его успели забронировать),
// возвращается ErrSlotNotFound и переключение не происходит.
func (s *Service) ToggleSlot(ctx context.Context, agentID int64, date time.Time, t types.TimeString, currentState domain.SlotState) error {
	if agentID <= 0 {
		return fmt.Errorf("%w: agent id must be positive", ErrInvalidInput)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var target domain.SlotState
	switch currentState {
	case domain.StateBookable:
		target = domain.StateHeld
	case domain.StateHeld:
		target = domain.StateBookable
	default:
		return fmt.Errorf("%w: state %q is not toggleable", ErrInvalidInput, currentState)
	}

	err := s.slotRepo.ToggleState(ctx, agentID, datecalc.DateOnly(date), t, currentState, target)
	if err != nil {
		if errors.Is(err, storageslot.ErrSlotNotFound) {
			return fmt.Errorf("%w: ToggleSlot - agent %d, %s %s", ErrSlotNotFound, agentID, date.Format(domain.DateFormat), t)
		}
		s.logger.Error("ToggleSlot: repository error for agent %d: %v", agentID, err)
		return fmt.Errorf("%w: ToggleSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ToggleSlot: agent %d, %s %s: %s -> %s", agentID, date.Format(domain.DateFormat), t, currentState, target)
	return nil
}

// ExtendHorizon догенерирует горизонт всем агентам, ведущим расписание.
// Дергается периодической задачей; отказ одного агента не прерывает
// остальных. Возвращает суммарное число вставленных слотов.
func (s *Service) ExtendHorizon(ctx context.Context) (int, error) {
	agentIDs, err := s.directoryRepo.ListScheduleOwnerIDs(ctx)
	if err != nil {
		s.logger.Error("ExtendHorizon: failed to list schedule owners: %v", err)
		return 0, fmt.Errorf("%w: ExtendHorizon - list schedule owners: %v", ErrInternal, err)
	}

	total := 0
	for _, agentID := range agentIDs {
		inserted, err := s.ensureForAgent(ctx, agentID)
		if err != nil {
			s.logger.Warn("ExtendHorizon: generation failed for agent %d: %v", agentID, err)
			continue
		}
		total += inserted
	}

	s.logger.Info("ExtendHorizon: %d agents processed, %d slots inserted", len(agentIDs), total)
	return total, nil
}

// ensureForAgent вставляет недостающие слоты агента на весь горизонт:
// дни 0..horizonDays-1 от сегодня, часы startHour..endHour включительно.
// Существующие слоты не трогаются, конкурирующая генерация безопасна.
func (s *Service) ensureForAgent(ctx context.Context, agentID int64) (int, error) {
	today, err := datecalc.TodayIn(s.timeProvider.Now(), s.referenceZone)
	if err != nil {
		return 0, fmt.Errorf("%w: ensureForAgent - resolve reference zone: %v", ErrInternal, err)
	}

	inserted := 0
	for day := 0; day < s.horizonDays; day++ {
		date := today.AddDate(0, 0, day)
		for hour := s.startHour; hour <= s.endHour; hour++ {
			t, err := types.NewTimeStringFromString(fmt.Sprintf("%02d:00", hour))
			if err != nil {
				return 0, fmt.Errorf("%w: ensureForAgent - bad hour %d: %v", ErrInternal, hour, err)
			}

			ok, err := s.slotRepo.InsertMissing(ctx, agentID, date, t)
			if err != nil {
				s.logger.Error("ensureForAgent: insert failed for agent %d, %s %s: %v", agentID, date.Format(domain.DateFormat), t, err)
				return 0, fmt.Errorf("%w: ensureForAgent - insert slot: %v", ErrInternal, err)
			}
			if ok {
				inserted++
			}
		}
	}

	return inserted, nil
}
