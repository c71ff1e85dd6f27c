package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

const (
	table = "reservations"

	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

var columns = []string{
	"id",
	"court_id",
	"court_name",
	"apartment_id",
	"user_id",
	"user_name",
	"date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"priority",
	"conversion_at",
	"conversion_rule",
	"converted_at",
	"players",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований кортов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает подтвержденное бронирование.
// Если в контексте есть транзакция, запрос выполняется в ней.
// Уникальный индекс (квартира, дата, начало) и exclusion-ограничение по корту
// переводятся в ErrDuplicateForApartment и ErrCourtOverlap.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	players := res.Players
	if players == nil {
		players = []string{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"court_id",
			"court_name",
			"apartment_id",
			"user_id",
			"user_name",
			"date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"priority",
			"conversion_at",
			"conversion_rule",
			"players",
		).
		Values(
			res.CourtID,
			res.CourtName,
			res.ApartmentID,
			res.UserID,
			res.UserName,
			res.Date.Format(domain.DateFormat),
			res.StartTime,
			res.EndTime,
			res.DurationMinutes,
			res.Status,
			res.Priority,
			res.ConversionAt,
			res.ConversionRule,
			pq.Array(players),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return nil, ErrDuplicateForApartment
			case pqExclusionViolation:
				return nil, ErrCourtOverlap
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	res.Players = players
	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}
	return res, nil
}

// GetByCourtAndDate возвращает подтвержденные бронирования корта на дату, упорядоченные по началу.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"court_id": courtID,
			"date":     date.Format(domain.DateFormat),
			"status":   domain.StatusConfirmed,
		}).
		OrderBy("start_time ASC")

	return r.list(ctx, "GetByCourtAndDate", builder)
}

// GetActiveByApartment возвращает активные бронирования квартиры: подтвержденные,
// с началом строго позже now. now должен быть в часовом поясе площадки.
func (r *Repository) GetActiveByApartment(ctx context.Context, apartmentID string, now time.Time) ([]*domain.Reservation, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"apartment_id": apartmentID, "status": domain.StatusConfirmed}).
		Where(activeAfter(now)).
		OrderBy("date ASC", "start_time ASC")

	return r.list(ctx, "GetActiveByApartment", builder)
}

// GetActiveByApartments то же, что GetActiveByApartment, для нескольких квартир одним запросом
func (r *Repository) GetActiveByApartments(ctx context.Context, apartmentIDs []string, now time.Time) ([]*domain.Reservation, error) {
	if len(apartmentIDs) == 0 {
		return []*domain.Reservation{}, nil
	}

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"apartment_id": apartmentIDs, "status": domain.StatusConfirmed}).
		Where(activeAfter(now)).
		OrderBy("apartment_id ASC", "date ASC", "start_time ASC")

	return r.list(ctx, "GetActiveByApartments", builder)
}

// ExistsForApartmentAt проверяет, есть ли у квартиры подтвержденное бронирование с началом (date, start)
func (r *Repository) ExistsForApartmentAt(ctx context.Context, apartmentID string, date time.Time, start types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(squirrel.Eq{
			"apartment_id": apartmentID,
			"date":         date.Format(domain.DateFormat),
			"start_time":   start,
			"status":       domain.StatusConfirmed,
		}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForApartmentAt - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForApartmentAt - scan: %w", ErrScanRow, err)
	}
	return exists, nil
}

// CancelIfConfirmed переводит бронирование в cancelled, только если оно сейчас confirmed.
// false означает, что ни одна строка не обновилась: бронирование уже отменено или не существует.
func (r *Repository) CancelIfConfirmed(ctx context.Context, id int64, reason string, at time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := cancelIfConfirmedQuery(id, reason, at).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CancelIfConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CancelIfConfirmed - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CancelIfConfirmed - rows affected: %w", ErrExecQuery, err)
	}
	return affected > 0, nil
}

// cancelIfConfirmedQuery условие по статусу делает отмену сигналом гонки: 0 строк - уже отменено
func cancelIfConfirmedQuery(id int64, reason string, at time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed})
}

// UpdatePriority сохраняет приоритет и метаданные конвертации подтвержденного бронирования.
// converted_at не затирается, если в res он не задан.
func (r *Repository) UpdatePriority(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("priority", res.Priority).
		Set("conversion_at", res.ConversionAt).
		Set("conversion_rule", res.ConversionRule).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID, "status": domain.StatusConfirmed})
	if res.ConvertedAt != nil {
		builder = builder.Set("converted_at", *res.ConvertedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePriority - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdatePriority - execute update: %w", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := lockInTransaction(ctx, builder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %w", ErrScanRow, op, err)
	}
	return result, nil
}

// lockInTransaction внутри транзакции читаемые строки блокируются до коммита
func lockInTransaction(ctx context.Context, builder squirrel.SelectBuilder) squirrel.SelectBuilder {
	if dbmetrics.IsInTransaction(ctx) {
		return builder.Suffix("FOR UPDATE")
	}
	return builder
}

// activeAfter: date > today OR (date = today AND start_time > now)
func activeAfter(now time.Time) squirrel.Sqlizer {
	today := now.Format(domain.DateFormat)
	return squirrel.Or{
		squirrel.Gt{"date": today},
		squirrel.And{
			squirrel.Eq{"date": today},
			squirrel.Gt{"start_time": now.Format("15:04:05")},
		},
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var (
		res            domain.Reservation
		conversionAt   sql.NullTime
		conversionRule sql.NullString
		convertedAt    sql.NullTime
		cancelReason   sql.NullString
		cancelledAt    sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.CourtID,
		&res.CourtName,
		&res.ApartmentID,
		&res.UserID,
		&res.UserName,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.DurationMinutes,
		&res.Status,
		&res.Priority,
		&conversionAt,
		&conversionRule,
		&convertedAt,
		pq.Array(&res.Players),
		&cancelReason,
		&cancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if conversionAt.Valid {
		res.ConversionAt = &conversionAt.Time
	}
	if conversionRule.Valid {
		res.ConversionRule = &conversionRule.String
	}
	if convertedAt.Valid {
		res.ConvertedAt = &convertedAt.Time
	}
	if cancelReason.Valid {
		res.CancellationReason = &cancelReason.String
	}
	if cancelledAt.Valid {
		res.CancelledAt = &cancelledAt.Time
	}
	return &res, nil
}
