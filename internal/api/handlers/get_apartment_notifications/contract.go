package get_apartment_notifications

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetNotifications(ctx context.Context, apartmentID string, actor models.Actor) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
