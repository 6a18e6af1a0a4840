package directory

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewRepository(db), mock, func() { db.Close() }
}

func TestGetAgent(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	agentRow := sqlmock.NewRows([]string{"id", "name", "email", "branch_id", "schedule_owner"}).
		AddRow(int64(1), "Kai", "kai@boh.example", int64(2), true)
	mock.ExpectQuery("SELECT (.+) FROM agents").WillReturnRows(agentRow)

	serviceRows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(int64(3), "Mortgage Consultation").
		AddRow(int64(4), "Notary")
	mock.ExpectQuery("SELECT (.+) FROM services").WillReturnRows(serviceRows)

	agent, err := repo.GetAgent(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Kai", agent.Name)
	assert.True(t, agent.ScheduleOwner)
	require.Len(t, agent.Services, 2)
	assert.Equal(t, "Notary", agent.Services[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAgent_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM agents").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "branch_id", "schedule_owner"}))

	_, err := repo.GetAgent(context.Background(), 42)

	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestGetBranchByAgent(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "time_zone", "market_id"}).
		AddRow(int64(2), "Downtown", "10 King St", "Pacific/Honolulu", int64(1))
	mock.ExpectQuery("SELECT (.+) FROM branches").WillReturnRows(rows)

	branch, err := repo.GetBranchByAgent(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Downtown", branch.Name)
	assert.Equal(t, "Pacific/Honolulu", branch.TimeZone)
}

func TestGetBranchByAgent_NotFound(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT (.+) FROM branches").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "time_zone", "market_id"}))

	_, err := repo.GetBranchByAgent(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestListBranchesForService(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id", "name", "address", "time_zone", "market_id"}).
		AddRow(int64(2), "Downtown", "10 King St", "Pacific/Honolulu", int64(1)).
		AddRow(int64(3), "Kahala", "4211 Waialae Ave", "Pacific/Honolulu", int64(1))
	mock.ExpectQuery("SELECT DISTINCT (.+) FROM branches").WillReturnRows(rows)

	branches, err := repo.ListBranchesForService(context.Background(), "Oahu", "Notary")

	require.NoError(t, err)
	require.Len(t, branches, 2)
	assert.Equal(t, int64(2), branches[0].ID)
	assert.Equal(t, "Kahala", branches[1].Name)
}

func TestListScheduleOwnerIDs(t *testing.T) {
	repo, mock, closeDB := newMockRepo(t)
	defer closeDB()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(5))
	mock.ExpectQuery("SELECT id FROM agents").WillReturnRows(rows)

	ids, err := repo.ListScheduleOwnerIDs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 5}, ids)
}
