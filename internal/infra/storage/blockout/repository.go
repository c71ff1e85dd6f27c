package blockout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const table = "blockouts"

var columns = []string{"id", "court_id", "date", "start_time", "end_time", "reason", "created_by", "created_at"}

// Repository репозиторий административных блокировок кортов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку
func (r *Repository) Create(ctx context.Context, b *domain.Blockout) (*domain.Blockout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("court_id", "date", "start_time", "end_time", "reason", "created_by").
		Values(b.CourtID, b.Date.Format(domain.DateFormat), b.StartTime, b.EndTime, b.Reason, b.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return b, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Blockout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBlockout(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blockout: %w", ErrScanRow, err)
	}
	return b, nil
}

// GetByCourtAndDate возвращает блокировки корта на дату
func (r *Repository) GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Blockout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"court_id": courtID, "date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Blockout, 0)
	for rows.Next() {
		b, err := scanBlockout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByCourtAndDate - scan blockout: %w", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCourtAndDate - iterate rows: %w", ErrScanRow, err)
	}
	return result, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockoutNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBlockout(row scanner) (*domain.Blockout, error) {
	var b domain.Blockout
	err := row.Scan(&b.ID, &b.CourtID, &b.Date, &b.StartTime, &b.EndTime, &b.Reason, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
