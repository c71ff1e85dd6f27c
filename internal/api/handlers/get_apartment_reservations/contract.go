package get_apartment_reservations

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetApartmentActive(ctx context.Context, apartmentID string, actor models.Actor) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
