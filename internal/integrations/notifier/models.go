package notifier

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// EventReservationDisplaced тип события о вытеснении
const EventReservationDisplaced = "reservation.displaced"

// DisplacementEvent тело сообщения о вытеснении
type DisplacementEvent struct {
	Type                  string    `json:"type"`
	NotificationID        int64     `json:"notificationId"`
	ReservationID         int64     `json:"reservationId"`
	RecipientApartmentID  string    `json:"recipientApartmentId"`
	DisplacingApartmentID string    `json:"displacingApartmentId"`
	CourtID               int64     `json:"courtId"`
	CourtName             string    `json:"courtName"`
	Date                  string    `json:"date"`
	StartTime             string    `json:"startTime"`
	EndTime               string    `json:"endTime"`
	OccurredAt            time.Time `json:"occurredAt"`
}

func newDisplacementEvent(n *domain.DisplacementNotification, now time.Time) DisplacementEvent {
	return DisplacementEvent{
		Type:                  EventReservationDisplaced,
		NotificationID:        n.ID,
		ReservationID:         n.ReservationID,
		RecipientApartmentID:  n.RecipientApartmentID,
		DisplacingApartmentID: n.DisplacingApartment,
		CourtID:               n.CourtID,
		CourtName:             n.CourtName,
		Date:                  n.Date.Format(domain.DateFormat),
		StartTime:             n.StartTime.String(),
		EndTime:               n.EndTime.String(),
		OccurredAt:            now.UTC(),
	}
}
