package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	ExistsForApartmentAt(ctx context.Context, apartmentID string, date time.Time, start types.TimeString) (bool, error)
	CancelIfConfirmed(ctx context.Context, id int64, reason string, at time.Time) (bool, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// NotificationRepository сохраняет записи об уведомлениях о вытеснении
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.DisplacementNotification) error
}

// ScheduleProvider отдает действующую конфигурацию расписания корта
type ScheduleProvider interface {
	GetForCourt(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error)
}

// AvailabilityResolver аннотирует слоты корта на дату
type AvailabilityResolver interface {
	ForCourtDate(ctx context.Context, courtID int64, date time.Time, schedule *domain.ScheduleConfig, now time.Time) ([]domain.SlotAvailability, error)
}

// PriorityAssigner распределяет приоритет нового бронирования квартиры
type PriorityAssigner interface {
	Assign(ctx context.Context, apartmentID string, now time.Time) (domain.Priority, error)
}

// Reconciler записывает нормализованные приоритеты квартиры
type Reconciler interface {
	Reconcile(ctx context.Context, apartmentID string, now time.Time) (int, error)
}

// Notifier уведомляет квартиру о вытеснении (fire-and-forget)
type Notifier interface {
	NotifyDisplacement(ctx context.Context, n *domain.DisplacementNotification) error
}

// GameCanceller отменяет игру, привязанную к бронированию (идемпотентно)
type GameCanceller interface {
	CancelForReservation(ctx context.Context, reservationID int64, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики результатов бронирования
type Metrics interface {
	BookingResult(result string)
	Displaced(n int)
	RaceLost()
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
