package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// CreateReservationRequest HTTP request model. Квартира и пользователь берутся из заголовков.
type CreateReservationRequest struct {
	CourtID           int64    `json:"courtId"`
	Date              string   `json:"date"`      // "2026-03-12"
	StartTime         string   `json:"startTime"` // "10:00"
	EndTime           string   `json:"endTime"`   // "11:00"
	ForceDisplacement bool     `json:"forceDisplacement"`
	Players           []string `json:"players,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64      `json:"id"`
	CourtID         int64      `json:"courtId"`
	CourtName       string     `json:"courtName"`
	ApartmentID     string     `json:"apartmentId"`
	UserID          int64      `json:"userId"`
	Date            string     `json:"date"`
	StartTime       string     `json:"startTime"`
	EndTime         string     `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Players         []string   `json:"players"`
	ConversionAt    *time.Time `json:"conversionAt,omitempty"`
	ConversionRule  *string    `json:"conversionRule,omitempty"`
	CreatedAt       string     `json:"createdAt"`
}

// CreateReservationResponse ответ на успешное бронирование
type CreateReservationResponse struct {
	Reservation ReservationResponse   `json:"reservation"`
	Displaced   []ReservationResponse `json:"displaced"`
}

// ConflictResponse ответ 409. ConfirmationRequired - нужно повторить запрос с forceDisplacement=true,
// Retry - запрос проиграл конкурентному и его можно повторить как есть.
type ConflictResponse struct {
	Code                 int                  `json:"code"`
	Message              string               `json:"message"`
	ConfirmationRequired bool                 `json:"confirmationRequired,omitempty"`
	Candidate            *ReservationResponse `json:"candidate,omitempty"`
	Candidates           int                  `json:"candidates,omitempty"`
	Retry                bool                 `json:"retry,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CourtID:           r.CourtID,
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		Players:           r.Players,
		ForceDisplacement: r.ForceDisplacement,
	}, nil
}

// FromDomainReservation конвертирует бронирование в HTTP response
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	players := r.Players
	if players == nil {
		players = []string{}
	}
	return &ReservationResponse{
		ID:              r.ID,
		CourtID:         r.CourtID,
		CourtName:       r.CourtName,
		ApartmentID:     r.ApartmentID,
		UserID:          r.UserID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		Priority:        string(r.Priority),
		Players:         players,
		ConversionAt:    r.ConversionAt,
		ConversionRule:  r.ConversionRule,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateReservationResponse {
	out := &CreateReservationResponse{
		Reservation: *FromDomainReservation(resp.Reservation),
		Displaced:   make([]ReservationResponse, 0, len(resp.Displaced)),
	}
	for _, d := range resp.Displaced {
		out.Displaced = append(out.Displaced, *FromDomainReservation(d))
	}
	return out
}
