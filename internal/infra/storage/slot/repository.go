package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
	"github.com/avilov/BOH-SchedulingService/pkg/dbmetrics"
	"github.com/avilov/BOH-SchedulingService/pkg/psqlbuilder"
	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// slotColumns полный набор колонок таблицы slots (с алиасом s)
var slotColumns = []string{
	"s.id",
	"s.agent_id",
	"s.slot_date",
	"s.slot_time",
	"s.state",
	"s.booked_at",
	"s.topic",
	"s.customer_name",
	"s.customer_phone",
	"s.created_at",
	"s.updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertMissing вставляет новый bookable слот для (agent, date, time),
// если такого еще нет. Возвращает true, если строка была вставлена.
//
// Уникальный индекс (agent_id, slot_date, slot_time) плюс ON CONFLICT DO
// NOTHING делают операцию идемпотентной: два генератора, гоняющиеся за
// одним агентом, не создадут дубликат и не получат ошибку.
func (r *Repository) InsertMissing(ctx context.Context, agentID int64, date time.Time, t types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("agent_id", "slot_date", "slot_time", "state").
		Values(agentID, date, t, domain.StateBookable).
		Suffix("ON CONFLICT (agent_id, slot_date, slot_time) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: InsertMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: InsertMissing - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: InsertMissing - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ListWithFilter получает слоты по фильтру, отсортированные по дате и времени.
// Join'ы к agents/branches/markets/services добавляются только когда
// соответствующее поле фильтра задано.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots s")

	if filter.BranchID != nil || filter.MarketName != nil || filter.ServiceName != nil {
		selectBuilder = selectBuilder.Join("agents a ON a.id = s.agent_id")
	}
	if filter.BranchID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.branch_id": *filter.BranchID})
	}
	if filter.MarketName != nil {
		selectBuilder = selectBuilder.
			Join("branches b ON b.id = a.branch_id").
			Join("markets m ON m.id = b.market_id").
			Where(squirrel.Eq{"m.name": *filter.MarketName})
	}
	if filter.ServiceName != nil {
		selectBuilder = selectBuilder.
			Join("agent_services ags ON ags.agent_id = a.id").
			Join("services sv ON sv.id = ags.service_id").
			Where(squirrel.Eq{"sv.name": *filter.ServiceName})
	}
	if filter.AgentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.agent_id": *filter.AgentID})
	}
	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.state": *filter.State})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"s.slot_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.slot_date": *filter.DateTo})
	}
	if filter.DateAfter != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"s.slot_date": *filter.DateAfter})
	}

	query, args, err := selectBuilder.
		OrderBy("s.slot_date ASC, s.slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// FindByAgentDateTime получает слот по уникальному ключу (agent, date, time)
func (r *Repository) FindByAgentDateTime(ctx context.Context, agentID int64, date time.Time, t types.TimeString) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Where(squirrel.Eq{"s.agent_id": agentID, "s.slot_date": date, "s.slot_time": t}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByAgentDateTime - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	s, err := r.scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByAgentDateTime - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// CountFutureByAgent подсчитывает будущие слоты агента (строго позже today).
// Используется для ленивого запуска генератора.
func (r *Repository) CountFutureByAgent(ctx context.Context, agentID int64, today time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots s").
		Where(squirrel.Eq{"s.agent_id": agentID}).
		Where(squirrel.Gt{"s.slot_date": today}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountFutureByAgent - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountFutureByAgent - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DistinctServiceNames возвращает имена услуг, у которых есть хотя бы один
// bookable слот в окне (dateAfter, dateTo]. Первая ступень воронки.
func (r *Repository) DistinctServiceNames(ctx context.Context, dateAfter, dateTo time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT sv.name").
		From("services sv").
		Join("agent_services ags ON ags.service_id = sv.id").
		Join("agents a ON a.id = ags.agent_id").
		Join("slots s ON s.agent_id = a.id").
		Where(squirrel.Eq{"s.state": domain.StateBookable}).
		Where(squirrel.Gt{"s.slot_date": dateAfter}).
		Where(squirrel.LtOrEq{"s.slot_date": dateTo}).
		OrderBy("sv.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DistinctServiceNames - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryNames(ctx, executor, "DistinctServiceNames", query, args)
}

// DistinctMarketNames возвращает имена рынков, где услуга serviceName доступна
// для бронирования в окне (dateAfter, dateTo]. Вторая ступень воронки.
func (r *Repository) DistinctMarketNames(ctx context.Context, serviceName string, dateAfter, dateTo time.Time) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT m.name").
		From("markets m").
		Join("branches b ON b.market_id = m.id").
		Join("agents a ON a.branch_id = b.id").
		Join("agent_services ags ON ags.agent_id = a.id").
		Join("services sv ON sv.id = ags.service_id").
		Join("slots s ON s.agent_id = a.id").
		Where(squirrel.Eq{"sv.name": serviceName}).
		Where(squirrel.Eq{"s.state": domain.StateBookable}).
		Where(squirrel.Gt{"s.slot_date": dateAfter}).
		Where(squirrel.LtOrEq{"s.slot_date": dateTo}).
		OrderBy("m.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DistinctMarketNames - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryNames(ctx, executor, "DistinctMarketNames", query, args)
}

// DistinctDates возвращает даты, на которые есть хотя бы один bookable слот
// подходящего агента в рынке. Третья ступень воронки.
func (r *Repository) DistinctDates(ctx context.Context, serviceName, marketName string, dateAfter, dateTo time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT s.slot_date").
		From("slots s").
		Join("agents a ON a.id = s.agent_id").
		Join("branches b ON b.id = a.branch_id").
		Join("markets m ON m.id = b.market_id").
		Join("agent_services ags ON ags.agent_id = a.id").
		Join("services sv ON sv.id = ags.service_id").
		Where(squirrel.Eq{"sv.name": serviceName}).
		Where(squirrel.Eq{"m.name": marketName}).
		Where(squirrel.Eq{"s.state": domain.StateBookable}).
		Where(squirrel.Gt{"s.slot_date": dateAfter}).
		Where(squirrel.LtOrEq{"s.slot_date": dateTo}).
		OrderBy("s.slot_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DistinctDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DistinctDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: DistinctDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DistinctDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// Claim атомарно захватывает bookable слот под бронирование клиента.
// Условное обновление (WHERE state = 'bookable') закрывает гонку двух
// одновременных бронирований: ровно один UPDATE увидит bookable строку,
// второй получит ноль строк и ErrSlotTaken.
func (r *Repository) Claim(
	ctx context.Context,
	agentID int64,
	date time.Time,
	t types.TimeString,
	phone, name, topic string,
	bookedAt time.Time,
) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.StateBooked).
		Set("customer_phone", phone).
		Set("customer_name", name).
		Set("topic", topic).
		Set("booked_at", bookedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"agent_id":  agentID,
			"slot_date": date,
			"slot_time": t,
			"state":     domain.StateBookable,
		}).
		Suffix("RETURNING id, agent_id, slot_date, slot_time, state, booked_at, topic, customer_name, customer_phone, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	s, err := r.scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Claim - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// FindActiveBookingsByPhone получает будущие booked слоты клиента.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка
// "не больше одного активного бронирования" и захват слота были одной
// атомарной единицей.
func (r *Repository) FindActiveBookingsByPhone(ctx context.Context, phone string, after time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Where(squirrel.Eq{"s.customer_phone": phone, "s.state": domain.StateBooked}).
		Where(squirrel.Gt{"s.slot_date": after}).
		OrderBy("s.slot_date ASC, s.slot_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveBookingsByPhone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveBookingsByPhone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Release возвращает booked слот в состояние bookable, очищая данные клиента
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", domain.StateBookable).
		Set("customer_phone", nil).
		Set("customer_name", nil).
		Set("topic", nil).
		Set("booked_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "state": domain.StateBooked}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ToggleState переводит слот из состояния from в to при условии, что его
// текущее состояние совпало с ожидаемым. Ноль строк означает, что слота нет
// или вызывающая сторона смотрела на устаревшее состояние.
func (r *Repository) ToggleState(
	ctx context.Context,
	agentID int64,
	date time.Time,
	t types.TimeString,
	from, to domain.SlotState,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("state", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"agent_id":  agentID,
			"slot_date": date,
			"slot_time": t,
			"state":     from,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ToggleState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ToggleState - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ToggleState - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListBookedForDate получает booked слоты на дату date для филиалов
// в таймзоне zone. Используется рассылкой напоминаний.
func (r *Repository) ListBookedForDate(ctx context.Context, date time.Time, zone string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Join("agents a ON a.id = s.agent_id").
		Join("branches b ON b.id = a.branch_id").
		Where(squirrel.Eq{"s.state": domain.StateBooked, "s.slot_date": date, "b.time_zone": zone}).
		OrderBy("s.slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlot сканирует одну строку слота
func (r *Repository) scanSlot(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.AgentID,
		&s.Date,
		&s.Time,
		&s.State,
		&s.BookedAt,
		&s.Topic,
		&s.CustomerName,
		&s.CustomerPhone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// queryNames выполняет запрос, возвращающий один строковый столбец
func (r *Repository) queryNames(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]string, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %s - scan name: %v", ErrScanRow, op, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return names, nil
}
