package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/psqlbuilder"
)

const table = "displacement_notifications"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")
)

// Repository хранит записи об уведомлениях о вытеснении
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись об уведомлении. Пишется в той же транзакции, что и вытеснение.
func (r *Repository) Create(ctx context.Context, n *domain.DisplacementNotification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"reservation_id",
			"recipient_apartment_id",
			"displacing_apartment_id",
			"court_id",
			"court_name",
			"date",
			"start_time",
			"end_time",
		).
		Values(
			n.ReservationID,
			n.RecipientApartmentID,
			n.DisplacingApartment,
			n.CourtID,
			n.CourtName,
			n.Date.Format(domain.DateFormat),
			n.StartTime,
			n.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByApartment возвращает уведомления квартиры, новые первыми
func (r *Repository) GetByApartment(ctx context.Context, apartmentID string, limit uint64) ([]*domain.DisplacementNotification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"recipient_apartment_id",
		"displacing_apartment_id",
		"court_id",
		"court_name",
		"date",
		"start_time",
		"end_time",
		"created_at",
	).
		From(table).
		Where(squirrel.Eq{"recipient_apartment_id": apartmentID}).
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByApartment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByApartment - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.DisplacementNotification, 0)
	for rows.Next() {
		var n domain.DisplacementNotification
		if err := rows.Scan(
			&n.ID,
			&n.ReservationID,
			&n.RecipientApartmentID,
			&n.DisplacingApartment,
			&n.CourtID,
			&n.CourtName,
			&n.Date,
			&n.StartTime,
			&n.EndTime,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByApartment - scan: %w", ErrExecQuery, err)
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByApartment - iterate rows: %w", ErrExecQuery, err)
	}
	return result, nil
}
