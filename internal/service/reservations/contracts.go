package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetActiveByApartment(ctx context.Context, apartmentID string, now time.Time) ([]*domain.Reservation, error)
	CancelIfConfirmed(ctx context.Context, id int64, reason string, at time.Time) (bool, error)
}

// NotificationRepository читает историю уведомлений о вытеснении
type NotificationRepository interface {
	GetByApartment(ctx context.Context, apartmentID string, limit uint64) ([]*domain.DisplacementNotification, error)
}

// GameCanceller отменяет игру, привязанную к бронированию (идемпотентно)
type GameCanceller interface {
	CancelForReservation(ctx context.Context, reservationID int64, reason string) error
}

// Reconciler записывает нормализованные приоритеты квартиры
type Reconciler interface {
	Reconcile(ctx context.Context, apartmentID string, now time.Time) (int, error)
}

// Metrics счетчик отмен
type Metrics interface {
	Cancelled()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
