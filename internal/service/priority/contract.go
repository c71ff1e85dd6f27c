package priority

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ActiveReservationReader читает активные (будущие, подтвержденные) бронирования квартиры.
// now передается в часовом поясе площадки.
type ActiveReservationReader interface {
	GetActiveByApartment(ctx context.Context, apartmentID string, now time.Time) ([]*domain.Reservation, error)
}

// PriorityWriter записывает приоритет и метаданные конвертации бронирования
type PriorityWriter interface {
	UpdatePriority(ctx context.Context, r *domain.Reservation) error
}

// ReservationRepository объединяет чтение активного набора и запись приоритета
type ReservationRepository interface {
	ActiveReservationReader
	PriorityWriter
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
