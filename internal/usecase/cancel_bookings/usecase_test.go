package cancel_bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/notifier"
	createBooking "github.com/avilov/BOH-SchedulingService/internal/usecase/create_booking"
	"github.com/avilov/BOH-SchedulingService/pkg/datecalc"
	"github.com/avilov/BOH-SchedulingService/pkg/ptr"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// bookingStore общий фейк хранилища для сценариев отмены и повторного
// бронирования: слоты живут в памяти, Release и Claim меняют их состояние
type bookingStore struct {
	slots []*domain.Slot
}

func (s *bookingStore) FindActiveBookingsByPhone(_ context.Context, phone string, after time.Time) ([]*domain.Slot, error) {
	var active []*domain.Slot
	for _, slot := range s.slots {
		if slot.State == domain.StateBooked && slot.CustomerPhone != nil &&
			*slot.CustomerPhone == phone && slot.Date.After(after) {
			active = append(active, slot)
		}
	}
	return active, nil
}

func (s *bookingStore) Release(_ context.Context, id int64) error {
	for _, slot := range s.slots {
		if slot.ID == id && slot.State == domain.StateBooked {
			slot.State = domain.StateBookable
			slot.CustomerPhone = nil
			slot.CustomerName = nil
			slot.Topic = nil
			slot.BookedAt = nil
			return nil
		}
	}
	return nil
}

func (s *bookingStore) Claim(_ context.Context, agentID int64, date time.Time, t types.TimeString, phone, name, topic string, bookedAt time.Time) (*domain.Slot, error) {
	for _, slot := range s.slots {
		if slot.AgentID == agentID && domain.SameDay(slot.Date, date) &&
			slot.Time == t && slot.State == domain.StateBookable {
			slot.State = domain.StateBooked
			slot.CustomerPhone = &phone
			slot.CustomerName = &name
			slot.Topic = &topic
			slot.BookedAt = &bookedAt
			return slot, nil
		}
	}
	return nil, errSlotTaken{}
}

type errSlotTaken struct{}

func (errSlotTaken) Error() string { return "slot taken" }

type fakeDirectoryRepo struct{}

func (fakeDirectoryRepo) GetAgent(_ context.Context, agentID int64) (*domain.Agent, error) {
	return &domain.Agent{ID: agentID, Name: "Kai", Email: "kai@boh.example"}, nil
}

func (fakeDirectoryRepo) GetBranchByAgent(_ context.Context, _ int64) (*domain.Branch, error) {
	return &domain.Branch{ID: 2, Name: "Downtown", TimeZone: "Pacific/Honolulu"}, nil
}

type nopSender struct{}

func (nopSender) BookingCancelled(_ context.Context, _ *notifier.Notification) error   { return nil }
func (nopSender) CancelAcknowledged(_ context.Context, _ *notifier.Notification) error { return nil }
func (nopSender) BookingConfirmed(_ context.Context, _ *notifier.Notification) error   { return nil }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// futureDate дата через days дней от сегодня в Гонолулу.
// Тесты привязаны к настоящим часам, потому что сценарий отмены и
// повторного бронирования проходит через два usecase с реальными
// провайдерами времени.
func futureDate(t *testing.T, days int) time.Time {
	t.Helper()
	today, err := datecalc.TodayIn(time.Now(), "Pacific/Honolulu")
	require.NoError(t, err)
	return today.AddDate(0, 0, days)
}

func bookedSlot(id, agentID int64, date time.Time, phone string) *domain.Slot {
	p := phone
	return &domain.Slot{
		ID:            id,
		AgentID:       agentID,
		Date:          date,
		Time:          "10:00",
		State:         domain.StateBooked,
		CustomerPhone: &p,
		CustomerName:  ptr.Ptr("Leilani"),
		Topic:         ptr.Ptr("Notary"),
	}
}

func newTestUseCase(store *bookingStore) *UseCase {
	return NewUseCase(store, fakeDirectoryRepo{}, nopSender{}, fakeTxManager{}, "Pacific/Honolulu", nopLogger{})
}

func TestExecute_CancelsFutureBookings(t *testing.T) {
	store := &bookingStore{
		slots: []*domain.Slot{
			bookedSlot(1, 1, futureDate(t, 4), "+18081234567"),
			bookedSlot(2, 2, futureDate(t, 6), "+18089999999"), // чужое бронирование
		},
	}
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{CustomerPhone: "(808) 123-4567"})

	require.NoError(t, err)
	assert.Equal(t, "+18081234567", resp.CustomerPhone)
	require.Len(t, resp.Cancelled, 1)
	assert.Equal(t, int64(1), resp.Cancelled[0].SlotID)
	assert.Equal(t, "Kai", resp.Cancelled[0].AgentName)

	// Слот освобожден, чужой не тронут
	assert.Equal(t, domain.StateBookable, store.slots[0].State)
	assert.Nil(t, store.slots[0].CustomerPhone)
	assert.Equal(t, domain.StateBooked, store.slots[1].State)
}

func TestExecute_NoActiveBookings(t *testing.T) {
	uc := newTestUseCase(&bookingStore{})

	resp, err := uc.Execute(context.Background(), &Request{CustomerPhone: "8081234567"})

	require.NoError(t, err)
	assert.Empty(t, resp.Cancelled)
}

func TestExecute_PastBookingIsNotCancelled(t *testing.T) {
	store := &bookingStore{
		slots: []*domain.Slot{bookedSlot(1, 1, futureDate(t, -3), "+18081234567")},
	}
	uc := newTestUseCase(store)

	resp, err := uc.Execute(context.Background(), &Request{CustomerPhone: "8081234567"})

	require.NoError(t, err)
	assert.Empty(t, resp.Cancelled)
	assert.Equal(t, domain.StateBooked, store.slots[0].State)
}

func TestExecute_InvalidPhone(t *testing.T) {
	uc := newTestUseCase(&bookingStore{})

	_, err := uc.Execute(context.Background(), &Request{CustomerPhone: "12345"})

	assert.ErrorIs(t, err, ErrInvalidPhone)
}

// Отмена освобождает клиента и слот: после нее тот же клиент может
// забронировать снова, в том числе тот же самый слот
func TestCancelThenRebook(t *testing.T) {
	date := futureDate(t, 4)
	store := &bookingStore{
		slots: []*domain.Slot{bookedSlot(1, 1, date, "+18081234567")},
	}

	cancelUC := newTestUseCase(store)
	resp, err := cancelUC.Execute(context.Background(), &Request{CustomerPhone: "8081234567"})
	require.NoError(t, err)
	require.Len(t, resp.Cancelled, 1)

	createUC := createBooking.NewUseCase(store, fakeDirectoryRepo{}, nopSender{}, fakeTxManager{}, nopLogger{})

	created, err := createUC.Execute(context.Background(), &createBooking.Request{
		AgentID:       1,
		Date:          date,
		Time:          "10:00",
		CustomerName:  "Leilani",
		CustomerPhone: "8081234567",
		Topic:         "Notary",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.SlotID)
	assert.Equal(t, domain.StateBooked, store.slots[0].State)
}
