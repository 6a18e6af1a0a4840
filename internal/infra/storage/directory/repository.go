// Package directory хранит справочник рынков, филиалов, агентов и услуг.
// Связи разворачиваются явными запросами по внешним ключам, без ленивых
// обходов графа отношений.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/pkg/dbmetrics"
	"github.com/avilov/BOH-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий справочника
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAgent получает агента по ID вместе со списком его услуг
func (r *Repository) GetAgent(ctx context.Context, id int64) (*domain.Agent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "branch_id", "schedule_owner").
		From("agents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAgent - build select query: %v", ErrBuildQuery, err)
	}

	var agent domain.Agent
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.BranchID,
		&agent.ScheduleOwner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetAgent - scan agent: %v", ErrScanRow, err)
	}

	services, err := r.listAgentServices(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	agent.Services = services

	return &agent, nil
}

// GetBranch получает филиал по ID
func (r *Repository) GetBranch(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "address", "time_zone", "market_id").
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranch - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBranchRow(executor.QueryRowContext(ctx, query, args...), "GetBranch")
}

// GetBranchByAgent получает филиал, к которому приписан агент
func (r *Repository) GetBranchByAgent(ctx context.Context, agentID int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("b.id", "b.name", "b.address", "b.time_zone", "b.market_id").
		From("branches b").
		Join("agents a ON a.branch_id = b.id").
		Where(squirrel.Eq{"a.id": agentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranchByAgent - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBranchRow(executor.QueryRowContext(ctx, query, args...), "GetBranchByAgent")
}

// ListBranchesForService получает филиалы рынка, где хотя бы один агент
// предлагает услугу serviceName. Отсортированы по ID филиала.
func (r *Repository) ListBranchesForService(ctx context.Context, marketName, serviceName string) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT b.id", "b.name", "b.address", "b.time_zone", "b.market_id").
		From("branches b").
		Join("markets m ON m.id = b.market_id").
		Join("agents a ON a.branch_id = b.id").
		Join("agent_services ags ON ags.agent_id = a.id").
		Join("services sv ON sv.id = ags.service_id").
		Where(squirrel.Eq{"m.name": marketName, "sv.name": serviceName}).
		OrderBy("b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBranchesForService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBranchesForService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.TimeZone, &b.MarketID); err != nil {
			return nil, fmt.Errorf("%w: ListBranchesForService - scan branch: %v", ErrScanRow, err)
		}
		branches = append(branches, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBranchesForService - rows error: %v", ErrScanRow, err)
	}

	return branches, nil
}

// ListScheduleOwnerIDs получает ID всех агентов, чье расписание ведет
// генератор слотов. Используется периодическим продлением горизонта.
func (r *Repository) ListScheduleOwnerIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("agents").
		Where(squirrel.Eq{"schedule_owner": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduleOwnerIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListScheduleOwnerIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListScheduleOwnerIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListScheduleOwnerIDs - rows error: %v", ErrScanRow, err)
	}

	return ids, nil
}

func (r *Repository) listAgentServices(ctx context.Context, executor DBExecutor, agentID int64) ([]domain.Service, error) {
	query, args, err := psqlbuilder.Select("sv.id", "sv.name").
		From("services sv").
		Join("agent_services ags ON ags.service_id = sv.id").
		Where(squirrel.Eq{"ags.agent_id": agentID}).
		OrderBy("sv.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listAgentServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listAgentServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name); err != nil {
			return nil, fmt.Errorf("%w: listAgentServices - scan service: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listAgentServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

func (r *Repository) scanBranchRow(row *sql.Row, op string) (*domain.Branch, error) {
	var b domain.Branch
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.TimeZone, &b.MarketID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan branch: %v", ErrScanRow, op, err)
	}
	return &b, nil
}
