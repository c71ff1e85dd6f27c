package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// DisplacementNotification tells an apartment that one of its provisional reservations was displaced.
type DisplacementNotification struct {
	ID                   int64
	ReservationID        int64 // the displaced reservation
	RecipientApartmentID string
	DisplacingApartment  string
	CourtID              int64
	CourtName            string
	Date                 time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	CreatedAt            time.Time
}

// NewDisplacementNotification builds the notification for a displaced reservation.
func NewDisplacementNotification(displaced *Reservation, displacingApartment string) *DisplacementNotification {
	return &DisplacementNotification{
		ReservationID:        displaced.ID,
		RecipientApartmentID: displaced.ApartmentID,
		DisplacingApartment:  displacingApartment,
		CourtID:              displaced.CourtID,
		CourtName:            displaced.CourtName,
		Date:                 displaced.Date,
		StartTime:            displaced.StartTime,
		EndTime:              displaced.EndTime,
	}
}
