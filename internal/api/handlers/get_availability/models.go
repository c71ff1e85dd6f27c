package get_availability

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CourtID             int64          `json:"courtId"`
	CourtName           string         `json:"courtName"`
	Date                string         `json:"date"`
	SlotDurationMinutes int            `json:"slotDurationMinutes"`
	Slots               []SlotResponse `json:"slots"`
}

// SlotResponse состояние одного слота
type SlotResponse struct {
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Available     bool    `json:"available"`
	Blocked       bool    `json:"blocked"`
	BlockReason   *string `json:"blockReason,omitempty"`
	ReservationID *int64  `json:"reservationId,omitempty"`
	ApartmentID   *string `json:"apartmentId,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	Displaceable  bool    `json:"displaceable"`
	Protected     bool    `json:"protected"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		CourtID:             resp.Court.ID,
		CourtName:           resp.Court.Name,
		Date:                resp.Date.Format(domain.DateFormat),
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Slots:               make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		slot := SlotResponse{
			StartTime:    s.Start.String(),
			EndTime:      s.End.String(),
			Available:    s.Available,
			Blocked:      s.Blocked,
			BlockReason:  s.BlockReason,
			Displaceable: s.Displaceable,
			Protected:    s.Protected,
		}
		if s.Reservation != nil {
			id, apartment := s.Reservation.ID, s.Reservation.ApartmentID
			slot.ReservationID = &id
			slot.ApartmentID = &apartment
		}
		if s.Priority != nil {
			p := string(*s.Priority)
			slot.Priority = &p
		}
		out.Slots = append(out.Slots, slot)
	}
	return out
}
