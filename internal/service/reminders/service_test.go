package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	"github.com/avilov/BOH-SchedulingService/pkg/ptr"
)

type fakeSlotRepo struct {
	slots   []*domain.Slot
	gotDate time.Time
	gotZone string
}

func (f *fakeSlotRepo) ListBookedForDate(_ context.Context, date time.Time, zone string) ([]*domain.Slot, error) {
	f.gotDate, f.gotZone = date, zone
	return f.slots, nil
}

type fakeDirectoryRepo struct {
	agentErr map[int64]error
}

func (f *fakeDirectoryRepo) GetAgent(_ context.Context, agentID int64) (*domain.Agent, error) {
	if err := f.agentErr[agentID]; err != nil {
		return nil, err
	}
	return &domain.Agent{ID: agentID, Name: "Kai", Email: "kai@boh.example"}, nil
}

func (f *fakeDirectoryRepo) GetBranchByAgent(_ context.Context, _ int64) (*domain.Branch, error) {
	return &domain.Branch{ID: 2, Name: "Downtown", TimeZone: "Pacific/Honolulu"}, nil
}

type fakeNotifier struct {
	sent    []*notifier.Notification
	failFor map[int64]error
}

func (f *fakeNotifier) Reminder(_ context.Context, n *notifier.Notification) error {
	if err := f.failFor[n.SlotID]; err != nil {
		return err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 20:00 UTC 6 марта: в Гонолулу 10:00 6 марта, завтра - 7 марта
var testNow = time.Date(2026, time.March, 6, 20, 0, 0, 0, time.UTC)

func bookedSlot(id, agentID int64) *domain.Slot {
	return &domain.Slot{
		ID:            id,
		AgentID:       agentID,
		Date:          time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC),
		Time:          "10:00",
		State:         domain.StateBooked,
		CustomerName:  ptr.Ptr("Leilani"),
		CustomerPhone: ptr.Ptr("+18081234567"),
		Topic:         ptr.Ptr("Notary"),
	}
}

func newTestService(repo *fakeSlotRepo, dir *fakeDirectoryRepo, n *fakeNotifier) *Service {
	svc := NewService(repo, dir, n, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func TestSendReminders(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.Slot{bookedSlot(1, 10), bookedSlot(2, 20)}}
	n := &fakeNotifier{}
	svc := newTestService(repo, &fakeDirectoryRepo{}, n)

	sent, err := svc.SendReminders(context.Background(), "Pacific/Honolulu")

	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	// Запрошены брони на завтра в зоне Гонолулу
	assert.Equal(t, time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), repo.gotDate)
	assert.Equal(t, "Pacific/Honolulu", repo.gotZone)

	require.Len(t, n.sent, 2)
	assert.Equal(t, "kai@boh.example", n.sent[0].AgentEmail)
	assert.Equal(t, "+18081234567", *n.sent[0].CustomerPhone)
}

func TestSendReminders_DeliveryFailureContinues(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.Slot{bookedSlot(1, 10), bookedSlot(2, 20)}}
	n := &fakeNotifier{failFor: map[int64]error{1: errors.New("smtp down")}}
	svc := newTestService(repo, &fakeDirectoryRepo{}, n)

	sent, err := svc.SendReminders(context.Background(), "Pacific/Honolulu")

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSendReminders_AgentLookupFailureContinues(t *testing.T) {
	repo := &fakeSlotRepo{slots: []*domain.Slot{bookedSlot(1, 10), bookedSlot(2, 20)}}
	dir := &fakeDirectoryRepo{agentErr: map[int64]error{10: errors.New("gone")}}
	n := &fakeNotifier{}
	svc := newTestService(repo, dir, n)

	sent, err := svc.SendReminders(context.Background(), "Pacific/Honolulu")

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSendReminders_NoBookings(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, &fakeDirectoryRepo{}, &fakeNotifier{})

	sent, err := svc.SendReminders(context.Background(), "Pacific/Honolulu")

	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendReminders_EmptyZone(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, &fakeDirectoryRepo{}, &fakeNotifier{})

	_, err := svc.SendReminders(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSendReminders_UnknownZone(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, &fakeDirectoryRepo{}, &fakeNotifier{})

	_, err := svc.SendReminders(context.Background(), "Pacific/Nowhere")

	assert.ErrorIs(t, err, ErrInvalidInput)
}
