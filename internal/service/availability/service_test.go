package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlotRepo struct {
	services []string
	markets  []string
	dates    []time.Time
	err      error

	gotService string
	gotMarket  string
	gotAfter   time.Time
	gotTo      time.Time
}

func (f *fakeSlotRepo) DistinctServiceNames(_ context.Context, dateAfter, dateTo time.Time) ([]string, error) {
	f.gotAfter, f.gotTo = dateAfter, dateTo
	return f.services, f.err
}

func (f *fakeSlotRepo) DistinctMarketNames(_ context.Context, serviceName string, dateAfter, dateTo time.Time) ([]string, error) {
	f.gotService, f.gotAfter, f.gotTo = serviceName, dateAfter, dateTo
	return f.markets, f.err
}

func (f *fakeSlotRepo) DistinctDates(_ context.Context, serviceName, marketName string, dateAfter, dateTo time.Time) ([]time.Time, error) {
	f.gotService, f.gotMarket, f.gotAfter, f.gotTo = serviceName, marketName, dateAfter, dateTo
	return f.dates, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 01:30 UTC 7 марта: в Гонолулу еще 6 марта
var testNow = time.Date(2026, time.March, 7, 1, 30, 0, 0, time.UTC)

func newTestService(repo *fakeSlotRepo) *Service {
	svc := NewService(repo, "Pacific/Honolulu", 10, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func TestAvailableServices_WindowBounds(t *testing.T) {
	repo := &fakeSlotRepo{services: []string{"Notary"}}
	svc := newTestService(repo)

	services, err := svc.AvailableServices(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Notary"}, services)

	// Окно (сегодня, сегодня+10] в зоне Гонолулу
	today := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, repo.gotAfter)
	assert.Equal(t, today.AddDate(0, 0, 10), repo.gotTo)
}

func TestAvailableServices_CustomLookahead(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := newTestService(repo)

	_, err := svc.AvailableServices(context.Background(), 3)
	require.NoError(t, err)

	today := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today.AddDate(0, 0, 3), repo.gotTo)
}

func TestAvailableServices_EmptyIsNotAnError(t *testing.T) {
	repo := &fakeSlotRepo{services: []string{}}
	svc := newTestService(repo)

	services, err := svc.AvailableServices(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestAvailableServices_RepoError(t *testing.T) {
	repo := &fakeSlotRepo{err: errors.New("boom")}
	svc := newTestService(repo)

	_, err := svc.AvailableServices(context.Background(), 0)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestAvailableMarkets(t *testing.T) {
	repo := &fakeSlotRepo{markets: []string{"Maui", "Oahu"}}
	svc := newTestService(repo)

	markets, err := svc.AvailableMarkets(context.Background(), "Notary", 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"Maui", "Oahu"}, markets)
	assert.Equal(t, "Notary", repo.gotService)
}

func TestAvailableMarkets_EmptyService(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	_, err := svc.AvailableMarkets(context.Background(), "  ", 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailableDates(t *testing.T) {
	d := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	repo := &fakeSlotRepo{dates: []time.Time{d}}
	svc := newTestService(repo)

	dates, err := svc.AvailableDates(context.Background(), "Notary", "Oahu", 0)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{d}, dates)
	assert.Equal(t, "Notary", repo.gotService)
	assert.Equal(t, "Oahu", repo.gotMarket)
}

func TestAvailableDates_EmptyMarket(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	_, err := svc.AvailableDates(context.Background(), "Notary", "", 0)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAvailableServices_UnknownZone(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, "Pacific/Nowhere", 10, nopLogger{})

	_, err := svc.AvailableServices(context.Background(), 0)

	assert.ErrorIs(t, err, ErrInternal)
}
