// Package availability первые три ступени клиентской воронки:
// услуга, затем рынок, затем дата. Каждая ступень является чистой выборкой
// по хранилищу слотов; пустой результат считается валидным ответом, а не
// ошибкой.
package availability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
)

// Service сервис запросов доступности
type Service struct {
	slotRepo SlotRepository
	// referenceZone зона, в которой вычисляется "сегодня" для окна воронки.
	// Ступени услуг и рынков не привязаны к филиалу, поэтому зона одна
	// на весь сервис (самая западная зона сети, чтобы не прятать слоты,
	// которые где-то еще доступны "сегодня").
	referenceZone string
	// defaultLookahead окно воронки, когда клиент не задал свое
	defaultLookahead int
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(slotRepo SlotRepository, referenceZone string, defaultLookahead int, logger Logger) *Service {
	if defaultLookahead <= 0 {
		defaultLookahead = domain.DefaultLookaheadDays
	}

	return &Service{
		slotRepo:         slotRepo,
		referenceZone:    referenceZone,
		defaultLookahead: defaultLookahead,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// AvailableServices возвращает отсортированный список услуг, у которых есть
// хотя бы один свободный слот в ближайшие lookaheadDays дней
func (s *Service) AvailableServices(ctx context.Context, lookaheadDays int) ([]string, error) {
	today, dateTo, err := s.window(lookaheadDays)
	if err != nil {
		return nil, err
	}

	names, err := s.slotRepo.DistinctServiceNames(ctx, today, dateTo)
	if err != nil {
		s.logger.Error("AvailableServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: AvailableServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AvailableServices: %d services bookable within %d days", len(names), lookaheadDays)
	return names, nil
}

// AvailableMarkets возвращает отсортированный список рынков, где услугу
// service можно забронировать в ближайшие lookaheadDays дней
func (s *Service) AvailableMarkets(ctx context.Context, service string, lookaheadDays int) ([]string, error) {
	if strings.TrimSpace(service) == "" {
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}

	today, dateTo, err := s.window(lookaheadDays)
	if err != nil {
		return nil, err
	}

	names, err := s.slotRepo.DistinctMarketNames(ctx, service, today, dateTo)
	if err != nil {
		s.logger.Error("AvailableMarkets: repository error for service=%s: %v", service, err)
		return nil, fmt.Errorf("%w: AvailableMarkets - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AvailableMarkets: %d markets offer %s within %d days", len(names), service, lookaheadDays)
	return names, nil
}

// AvailableDates возвращает отсортированный список дат, на которые услугу
// service можно забронировать в рынке market
func (s *Service) AvailableDates(ctx context.Context, service, market string, lookaheadDays int) ([]time.Time, error) {
	if strings.TrimSpace(service) == "" {
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(market) == "" {
		return nil, fmt.Errorf("%w: market name is required", ErrInvalidInput)
	}

	today, dateTo, err := s.window(lookaheadDays)
	if err != nil {
		return nil, err
	}

	dates, err := s.slotRepo.DistinctDates(ctx, service, market, today, dateTo)
	if err != nil {
		s.logger.Error("AvailableDates: repository error for service=%s, market=%s: %v", service, market, err)
		return nil, fmt.Errorf("%w: AvailableDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AvailableDates: %d dates for service=%s, market=%s", len(dates), service, market)
	return dates, nil
}

// window вычисляет границы окна воронки: (сегодня, сегодня+lookaheadDays].
// Бронировать на сегодня нельзя, поэтому нижняя граница строгая.
func (s *Service) window(lookaheadDays int) (time.Time, time.Time, error) {
	if lookaheadDays <= 0 {
		lookaheadDays = s.defaultLookahead
	}

	today, err := datecalc.TodayIn(s.timeProvider.Now(), s.referenceZone)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: resolve reference zone: %v", ErrInternal, err)
	}

	return today, today.AddDate(0, 0, lookaheadDays), nil
}
