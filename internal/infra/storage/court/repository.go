package court

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

var (
	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("court.repository: court not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("court.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("court.repository: failed to scan row")
)

// Repository репозиторий кортов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кортов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активный корт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := activeCourtQuery(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Court
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.IsActive, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan court: %w", ErrScanRow, err)
	}
	return &c, nil
}

// activeCourtQuery неактивные корты для бронирования не существуют
func activeCourtQuery(id int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "is_active", "created_at").
		From("courts").
		Where(squirrel.Eq{"id": id, "is_active": true})
}
