package slot

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
)

var slotRowColumns = []string{
	"id", "agent_id", "slot_date", "slot_time", "state",
	"booked_at", "topic", "customer_name", "customer_phone",
	"created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func TestInsertMissing(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// Новый слот вставлен
	mock.ExpectExec("INSERT INTO slots .+ ON CONFLICT").
		WillReturnResult(sqlmock.NewResult(1, 1))

	inserted, err := repo.InsertMissing(context.Background(), 1, date, "10:00")
	require.NoError(t, err)
	assert.True(t, inserted)

	// Слот уже существует: ON CONFLICT DO NOTHING, ноль строк
	mock.ExpectExec("INSERT INTO slots .+ ON CONFLICT").
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err = repo.InsertMissing(context.Background(), 1, date, "10:00")
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaim(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	bookedAt := time.Date(2026, time.March, 6, 20, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows(slotRowColumns).AddRow(
		int64(100), int64(1), date, "10:00", string(domain.StateBooked),
		bookedAt, "Notary", "Leilani", "+18081234567",
		now, now,
	)
	mock.ExpectQuery("UPDATE slots SET").WillReturnRows(rows)

	s, err := repo.Claim(context.Background(), 1, date, "10:00", "+18081234567", "Leilani", "Notary", bookedAt)

	require.NoError(t, err)
	assert.Equal(t, int64(100), s.ID)
	assert.Equal(t, domain.StateBooked, s.State)
	require.NotNil(t, s.CustomerPhone)
	assert.Equal(t, "+18081234567", *s.CustomerPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaim_SlotTaken(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	// Условный UPDATE не нашел bookable строку: слот уже занят или удержан
	mock.ExpectQuery("UPDATE slots SET").WillReturnError(sql.ErrNoRows)

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Claim(context.Background(), 1, date, "10:00", "+18081234567", "Leilani", "Notary", time.Now())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec("UPDATE slots SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Release(context.Background(), 100)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease_NotBooked(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec("UPDATE slots SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Release(context.Background(), 100)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestToggleState_StaleState(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectExec("UPDATE slots SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	err := repo.ToggleState(context.Background(), 1, date, "10:00", domain.StateBookable, domain.StateHeld)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestFindActiveBookingsByPhone(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows(slotRowColumns).AddRow(
		int64(100), int64(1), date, "10:00", string(domain.StateBooked),
		now, "Notary", "Leilani", "+18081234567",
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM slots").WillReturnRows(rows)

	after := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	slots, err := repo.FindActiveBookingsByPhone(context.Background(), "+18081234567", after)

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(100), slots[0].ID)
	assert.Equal(t, date, slots[0].Date)
}

func TestDistinctServiceNames(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"name"}).
		AddRow("Mortgage Consultation").
		AddRow("Notary")
	mock.ExpectQuery("SELECT DISTINCT sv.name FROM services").WillReturnRows(rows)

	after := time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC)
	names, err := repo.DistinctServiceNames(context.Background(), after, after.AddDate(0, 0, 10))

	require.NoError(t, err)
	assert.Equal(t, []string{"Mortgage Consultation", "Notary"}, names)
}

func TestListBookedForDate(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	date := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := sqlmock.NewRows(slotRowColumns).AddRow(
		int64(7), int64(3), date, "09:00", string(domain.StateBooked),
		now, "Account Opening", "Noa", "+18085551212",
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM slots").WillReturnRows(rows)

	slots, err := repo.ListBookedForDate(context.Background(), date, "Pacific/Honolulu")

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(3), slots[0].AgentID)
}
