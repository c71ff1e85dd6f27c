package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const table = "schedule_config"

var (
	// ErrConfigNotFound возвращается, когда нет ни корт-специфичной, ни глобальной конфигурации
	ErrConfigNotFound = errors.New("schedule.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")
)

var columns = []string{
	"id",
	"court_id",
	"slot_duration_minutes",
	"weekday_open",
	"weekday_close",
	"weekend_open",
	"weekend_close",
	"break_start",
	"break_end",
	"weekend_break_start",
	"weekend_break_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWithHierarchy возвращает конфигурацию с учетом иерархии:
// 1. Конфигурация корта (court_id = courtID)
// 2. Глобальная конфигурация (court_id IS NULL)
// courtID = 0 запрашивает только глобальную.
func (r *Repository) GetWithHierarchy(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := hierarchyQuery(courtID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithHierarchy - scan config: %w", ErrExecQuery, err)
	}
	return cfg, nil
}

// hierarchyQuery выбирает одну строку: корт раньше глобальной (NULL в конце)
func hierarchyQuery(courtID int64) squirrel.SelectBuilder {
	scope := squirrel.Or{squirrel.Eq{"court_id": nil}}
	if courtID != 0 {
		scope = append(scope, squirrel.Eq{"court_id": courtID})
	}

	return psqlbuilder.Select(columns...).
		From(table).
		Where(scope).
		OrderBy("court_id NULLS LAST").
		Limit(1)
}

// Upsert создает или заменяет конфигурацию для своей области (корт или глобальная)
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekendOpen, weekendClose := types.TimeString{}, types.TimeString{}
	if cfg.Weekend != nil {
		weekendOpen, weekendClose = cfg.Weekend.Open, cfg.Weekend.Close
	}
	breakStart, breakEnd := types.TimeString{}, types.TimeString{}
	if cfg.Break != nil {
		breakStart, breakEnd = cfg.Break.Start, cfg.Break.End
	}
	weekendBreakStart, weekendBreakEnd := types.TimeString{}, types.TimeString{}
	if cfg.WeekendBreak != nil {
		weekendBreakStart, weekendBreakEnd = cfg.WeekendBreak.Start, cfg.WeekendBreak.End
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[1:11]...).
		Values(
			cfg.CourtID,
			cfg.SlotDurationMinutes,
			cfg.Weekday.Open,
			cfg.Weekday.Close,
			weekendOpen,
			weekendClose,
			breakStart,
			breakEnd,
			weekendBreakStart,
			weekendBreakEnd,
		).
		Suffix(`ON CONFLICT ((COALESCE(court_id, 0))) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			weekday_open = EXCLUDED.weekday_open,
			weekday_close = EXCLUDED.weekday_close,
			weekend_open = EXCLUDED.weekend_open,
			weekend_close = EXCLUDED.weekend_close,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			weekend_break_start = EXCLUDED.weekend_break_start,
			weekend_break_end = EXCLUDED.weekend_break_end,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute: %w", ErrExecQuery, err)
	}
	return cfg, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row scanner) (*domain.ScheduleConfig, error) {
	var (
		cfg                                domain.ScheduleConfig
		courtID                            sql.NullInt64
		weekendOpen, weekendClose          types.TimeString
		breakStart, breakEnd               types.TimeString
		weekendBreakStart, weekendBreakEnd types.TimeString
	)

	err := row.Scan(
		&cfg.ID,
		&courtID,
		&cfg.SlotDurationMinutes,
		&cfg.Weekday.Open,
		&cfg.Weekday.Close,
		&weekendOpen,
		&weekendClose,
		&breakStart,
		&breakEnd,
		&weekendBreakStart,
		&weekendBreakEnd,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if courtID.Valid {
		cfg.CourtID = &courtID.Int64
	}
	if !weekendOpen.IsZero() && !weekendClose.IsZero() {
		cfg.Weekend = &domain.DayHours{Open: weekendOpen, Close: weekendClose}
	}
	if !breakStart.IsZero() && !breakEnd.IsZero() {
		cfg.Break = &domain.BreakWindow{Start: breakStart, End: breakEnd}
	}
	if !weekendBreakStart.IsZero() && !weekendBreakEnd.IsZero() {
		cfg.WeekendBreak = &domain.BreakWindow{Start: weekendBreakStart, End: weekendBreakEnd}
	}
	return &cfg, nil
}
