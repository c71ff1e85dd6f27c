package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Actor пользователь, выполняющий действие. ApartmentID может быть пустым.
type Actor struct {
	UserID      int64
	ApartmentID string
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64    `json:"id"`
	CourtID         int64    `json:"courtId"`
	CourtName       string   `json:"courtName"`
	ApartmentID     string   `json:"apartmentId"`
	UserID          int64    `json:"userId"`
	UserName        string   `json:"userName"`
	Date            string   `json:"date"`      // "2026-03-12"
	StartTime       string   `json:"startTime"` // "10:00"
	EndTime         string   `json:"endTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	Players         []string `json:"players"`

	ConversionAt   *time.Time `json:"conversionAt,omitempty"`
	ConversionRule *string    `json:"conversionRule,omitempty"`
	ConvertedAt    *time.Time `json:"convertedAt,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// NotificationResponse запись об уведомлении о вытеснении
type NotificationResponse struct {
	ID                  int64     `json:"id"`
	ReservationID       int64     `json:"reservationId"`
	DisplacingApartment string    `json:"displacingApartmentId"`
	CourtID             int64     `json:"courtId"`
	CourtName           string    `json:"courtName"`
	Date                string    `json:"date"`
	StartTime           string    `json:"startTime"`
	EndTime             string    `json:"endTime"`
	CreatedAt           time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO. Статус completed
// выводится из времени окончания относительно now.
func FromDomainReservation(r *domain.Reservation, now time.Time, loc *time.Location) *ReservationResponse {
	if r == nil {
		return nil
	}

	players := r.Players
	if players == nil {
		players = []string{}
	}

	return &ReservationResponse{
		ID:                 r.ID,
		CourtID:            r.CourtID,
		CourtName:          r.CourtName,
		ApartmentID:        r.ApartmentID,
		UserID:             r.UserID,
		UserName:           r.UserName,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		DurationMinutes:    r.DurationMinutes,
		Status:             string(r.EffectiveStatus(now, loc)),
		Priority:           string(r.Priority),
		Players:            players,
		ConversionAt:       r.ConversionAt,
		ConversionRule:     r.ConversionRule,
		ConvertedAt:        r.ConvertedAt,
		CancellationReason: r.CancellationReason,
		CancelledAt:        r.CancelledAt,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation, now time.Time, loc *time.Location) *ReservationListResponse {
	resp := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(list))}
	for _, r := range list {
		if item := FromDomainReservation(r, now, loc); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}
	return resp
}

// FromDomainNotificationList конвертирует уведомления в DTO
func FromDomainNotificationList(list []*domain.DisplacementNotification) *NotificationListResponse {
	resp := &NotificationListResponse{Notifications: make([]NotificationResponse, 0, len(list))}
	for _, n := range list {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:                  n.ID,
			ReservationID:       n.ReservationID,
			DisplacingApartment: n.DisplacingApartment,
			CourtID:             n.CourtID,
			CourtName:           n.CourtName,
			Date:                n.Date.Format(domain.DateFormat),
			StartTime:           n.StartTime.String(),
			EndTime:             n.EndTime.String(),
			CreatedAt:           n.CreatedAt,
		})
	}
	return resp
}
