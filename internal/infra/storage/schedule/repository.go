package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SVM-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// Repository репозиторий для работы с расписаниями площадок
//
// Расписание хранится в трех таблицах:
//   - venue_schedules: окно по умолчанию и параметры бронирования
//   - venue_schedule_overrides: переопределения и блокировки по дням недели
//   - venue_blocked_dates: точечные закрытые даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByVenueID собирает полное расписание площадки из трех таблиц
// Если базовой записи нет, возвращает ErrScheduleNotFound - решение о
// применении расписания по умолчанию принимает вызывающий сервис
func (r *Repository) GetByVenueID(ctx context.Context, venueID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"venue_id",
		"default_open_time",
		"default_close_time",
		"min_booking_hours",
		"cooldown_minutes",
		"created_at",
		"updated_at",
	).
		From("venue_schedules").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - build select query: %v", ErrBuildQuery, err)
	}

	schedule := domain.WeeklySchedule{
		WeekdayOverrides: map[time.Weekday]domain.DayWindow{},
		BlockedWeekdays:  map[time.Weekday]bool{},
		BlockedDates:     map[string]bool{},
	}
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.VenueID,
		&schedule.DefaultWindow.OpenTime,
		&schedule.DefaultWindow.CloseTime,
		&schedule.MinBookingHours,
		&schedule.CooldownMinutes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueID - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	if err := r.loadOverrides(ctx, executor, &schedule); err != nil {
		return nil, err
	}
	if err := r.loadBlockedDates(ctx, executor, &schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *Repository) loadOverrides(ctx context.Context, executor DBExecutor, schedule *domain.WeeklySchedule) error {
	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time", "is_blocked").
		From("venue_schedule_overrides").
		Where(squirrel.Eq{"venue_id": schedule.VenueID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var openTime, closeTime types.TimeString
		var isBlocked bool

		if err := rows.Scan(&weekday, &openTime, &closeTime, &isBlocked); err != nil {
			return fmt.Errorf("%w: loadOverrides - scan row: %v", ErrScanRow, err)
		}

		if isBlocked {
			schedule.BlockedWeekdays[time.Weekday(weekday)] = true
			continue
		}
		schedule.WeekdayOverrides[time.Weekday(weekday)] = domain.DayWindow{
			OpenTime:  openTime,
			CloseTime: closeTime,
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadOverrides - rows error: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadBlockedDates(ctx context.Context, executor DBExecutor, schedule *domain.WeeklySchedule) error {
	query, args, err := psqlbuilder.Select("blocked_date").
		From("venue_blocked_dates").
		Where(squirrel.Eq{"venue_id": schedule.VenueID}).
		OrderBy("blocked_date ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var blockedDate time.Time
		if err := rows.Scan(&blockedDate); err != nil {
			return fmt.Errorf("%w: loadBlockedDates - scan row: %v", ErrScanRow, err)
		}
		schedule.BlockedDates[blockedDate.Format(domain.DateFormat)] = true
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return nil
}

// Upsert сохраняет полное расписание площадки
// Базовая запись пишется через ON CONFLICT, дочерние таблицы перезаписываются
// целиком. Вызывается внутри транзакции, чтобы читатели не увидели
// расписание с наполовину обновленными переопределениями
func (r *Repository) Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_schedules").
		Columns(
			"venue_id",
			"default_open_time",
			"default_close_time",
			"min_booking_hours",
			"cooldown_minutes",
		).
		Values(
			schedule.VenueID,
			schedule.DefaultWindow.OpenTime,
			schedule.DefaultWindow.CloseTime,
			schedule.MinBookingHours,
			schedule.CooldownMinutes,
		).
		Suffix(`ON CONFLICT (venue_id) DO UPDATE SET
			default_open_time = EXCLUDED.default_open_time,
			default_close_time = EXCLUDED.default_close_time,
			min_booking_hours = EXCLUDED.min_booking_hours,
			cooldown_minutes = EXCLUDED.cooldown_minutes,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	if err := r.replaceOverrides(ctx, executor, schedule); err != nil {
		return nil, err
	}
	if err := r.replaceBlockedDates(ctx, executor, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) replaceOverrides(ctx context.Context, executor DBExecutor, schedule *domain.WeeklySchedule) error {
	query, args, err := psqlbuilder.Delete("venue_schedule_overrides").
		Where(squirrel.Eq{"venue_id": schedule.VenueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceOverrides - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceOverrides - execute delete: %v", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("venue_schedule_overrides").
		Columns("venue_id", "weekday", "open_time", "close_time", "is_blocked")

	// Стабильный порядок строк для предсказуемых планов и дампов
	rowCount := 0
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if schedule.BlockedWeekdays[wd] {
			insertBuilder = insertBuilder.Values(schedule.VenueID, int(wd), nil, nil, true)
			rowCount++
			continue
		}
		if window, ok := schedule.WeekdayOverrides[wd]; ok {
			insertBuilder = insertBuilder.Values(schedule.VenueID, int(wd), window.OpenTime, window.CloseTime, false)
			rowCount++
		}
	}
	if rowCount == 0 {
		return nil
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceOverrides - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceOverrides - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) replaceBlockedDates(ctx context.Context, executor DBExecutor, schedule *domain.WeeklySchedule) error {
	query, args, err := psqlbuilder.Delete("venue_blocked_dates").
		Where(squirrel.Eq{"venue_id": schedule.VenueID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - execute delete: %v", ErrExecQuery, err)
	}

	dates := make([]string, 0, len(schedule.BlockedDates))
	for date, blocked := range schedule.BlockedDates {
		if blocked {
			dates = append(dates, date)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	sort.Strings(dates)

	insertBuilder := psqlbuilder.Insert("venue_blocked_dates").
		Columns("venue_id", "blocked_date")

	for _, date := range dates {
		insertBuilder = insertBuilder.Values(schedule.VenueID, date)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: replaceBlockedDates - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
