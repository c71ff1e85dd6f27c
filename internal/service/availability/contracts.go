package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// ReservationRepository интерфейс чтения бронирований корта и активных наборов квартир
type ReservationRepository interface {
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error)
	GetActiveByApartments(ctx context.Context, apartmentIDs []string, now time.Time) ([]*domain.Reservation, error)
}

// BlockoutRepository интерфейс чтения блокировок
type BlockoutRepository interface {
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Blockout, error)
}
