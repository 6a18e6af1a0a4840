package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	storageslot "github.com/avilov/BOH-SchedulingService/internal/infra/storage/slot"
	"github.com/avilov/BOH-SchedulingService/internal/integrations/identity"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

type fakeSlotRepo struct {
	existing    map[string]bool
	futureCount int
	slots       []*domain.Slot

	toggleErr  error
	gotFrom    domain.SlotState
	gotTo      domain.SlotState
	insertErr  error
	gotFilter  domain.SlotFilter
	listCalled bool
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{existing: make(map[string]bool)}
}

func slotKey(agentID int64, date time.Time, t types.TimeString) string {
	return fmt.Sprintf("%d|%s|%s", agentID, date.Format(domain.DateFormat), t)
}

func (f *fakeSlotRepo) InsertMissing(_ context.Context, agentID int64, date time.Time, t types.TimeString) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	key := slotKey(agentID, date, t)
	if f.existing[key] {
		return false, nil
	}
	f.existing[key] = true
	return true, nil
}

func (f *fakeSlotRepo) CountFutureByAgent(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.futureCount, nil
}

func (f *fakeSlotRepo) ListWithFilter(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	f.listCalled = true
	f.gotFilter = filter
	return f.slots, nil
}

func (f *fakeSlotRepo) ToggleState(_ context.Context, _ int64, _ time.Time, _ types.TimeString, from, to domain.SlotState) error {
	f.gotFrom, f.gotTo = from, to
	return f.toggleErr
}

type fakeDirectoryRepo struct {
	agent    *domain.Agent
	agentErr error
	branch   *domain.Branch
	owners   []int64
}

func (f *fakeDirectoryRepo) GetAgent(_ context.Context, _ int64) (*domain.Agent, error) {
	return f.agent, f.agentErr
}

func (f *fakeDirectoryRepo) GetBranchByAgent(_ context.Context, _ int64) (*domain.Branch, error) {
	return f.branch, nil
}

func (f *fakeDirectoryRepo) ListScheduleOwnerIDs(_ context.Context) ([]int64, error) {
	return f.owners, nil
}

type fakeIdentity struct {
	role *identity.AgentRole
	err  error
}

func (f *fakeIdentity) GetAgentRole(_ context.Context, _ int64) (*identity.AgentRole, error) {
	return f.role, f.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, time.March, 6, 20, 0, 0, 0, time.UTC)

func newTestService(repo *fakeSlotRepo, dir *fakeDirectoryRepo, ident *fakeIdentity) *Service {
	svc := NewService(repo, dir, ident, 15, 8, 15, "Pacific/Honolulu", nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func activeAgentRole() *identity.AgentRole {
	return &identity.AgentRole{AgentID: 1, Role: "agent", Active: true}
}

func TestEnsureHorizon_GeneratesFullHorizon(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo, &fakeDirectoryRepo{}, &fakeIdentity{role: activeAgentRole()})

	inserted, err := svc.EnsureHorizon(context.Background(), 1)

	require.NoError(t, err)
	// 15 дней по 8 слотов (8:00..15:00 включительно)
	assert.Equal(t, 15*8, inserted)
}

func TestEnsureHorizon_Idempotent(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newTestService(repo, &fakeDirectoryRepo{}, &fakeIdentity{role: activeAgentRole()})

	_, err := svc.EnsureHorizon(context.Background(), 1)
	require.NoError(t, err)

	inserted, err := svc.EnsureHorizon(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestEnsureHorizon_InactiveAgent(t *testing.T) {
	role := &identity.AgentRole{AgentID: 1, Role: "agent", Active: false}
	svc := newTestService(newFakeSlotRepo(), &fakeDirectoryRepo{}, &fakeIdentity{role: role})

	_, err := svc.EnsureHorizon(context.Background(), 1)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestEnsureHorizon_UnknownAgent(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), &fakeDirectoryRepo{}, &fakeIdentity{err: identity.ErrAgentNotFound})

	_, err := svc.EnsureHorizon(context.Background(), 42)

	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestAgentSlots_LazyGeneration(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.futureCount = 0
	dir := &fakeDirectoryRepo{
		agent:  &domain.Agent{ID: 1, Name: "Kai"},
		branch: &domain.Branch{ID: 2, Name: "Downtown", TimeZone: "Pacific/Honolulu"},
	}
	svc := newTestService(repo, dir, &fakeIdentity{})

	view, err := svc.AgentSlots(context.Background(), 1, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Kai", view.AgentName)
	assert.Equal(t, "Downtown", view.BranchName)
	// Нет будущих слотов - горизонт сгенерирован лениво
	assert.NotEmpty(t, repo.existing)
	assert.True(t, repo.listCalled)
}

func TestAgentSlots_NoGenerationWhenSlotsExist(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.futureCount = 42
	dir := &fakeDirectoryRepo{
		agent:  &domain.Agent{ID: 1, Name: "Kai"},
		branch: &domain.Branch{ID: 2, TimeZone: "Pacific/Honolulu"},
	}
	svc := newTestService(repo, dir, &fakeIdentity{})

	_, err := svc.AgentSlots(context.Background(), 1, nil, nil)

	require.NoError(t, err)
	assert.Empty(t, repo.existing)
}

func TestAgentSlots_InvertedRange(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), &fakeDirectoryRepo{}, &fakeIdentity{})

	from := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)

	_, err := svc.AgentSlots(context.Background(), 1, &from, &to)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToggleSlot(t *testing.T) {
	tests := []struct {
		name    string
		current domain.SlotState
		wantTo  domain.SlotState
		wantErr error
	}{
		{name: "bookable becomes held", current: domain.StateBookable, wantTo: domain.StateHeld},
		{name: "held becomes bookable", current: domain.StateHeld, wantTo: domain.StateBookable},
		{name: "booked is not toggleable", current: domain.StateBooked, wantErr: ErrInvalidInput},
	}

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeSlotRepo()
			svc := newTestService(repo, &fakeDirectoryRepo{}, &fakeIdentity{})

			err := svc.ToggleSlot(context.Background(), 1, date, "10:00", tt.current)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.current, repo.gotFrom)
			assert.Equal(t, tt.wantTo, repo.gotTo)
		})
	}
}

func TestToggleSlot_StaleState(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.toggleErr = storageslot.ErrSlotNotFound
	svc := newTestService(repo, &fakeDirectoryRepo{}, &fakeIdentity{})

	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	err := svc.ToggleSlot(context.Background(), 1, date, "10:00", domain.StateBookable)

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExtendHorizon(t *testing.T) {
	repo := newFakeSlotRepo()
	dir := &fakeDirectoryRepo{owners: []int64{1, 2}}
	svc := newTestService(repo, dir, &fakeIdentity{})

	inserted, err := svc.ExtendHorizon(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2*15*8, inserted)
}

func TestExtendHorizon_AgentFailureDoesNotAbort(t *testing.T) {
	repo := newFakeSlotRepo()
	repo.insertErr = errors.New("boom")
	dir := &fakeDirectoryRepo{owners: []int64{1, 2}}
	svc := newTestService(repo, dir, &fakeIdentity{})

	inserted, err := svc.ExtendHorizon(context.Background())

	require.NoError(t, err)
	assert.Zero(t, inserted)
}
