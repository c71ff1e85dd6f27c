package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgAlreadyCancelled     = "бронирование уже отменено или завершено"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actor := models.Actor{UserID: userID, ApartmentID: middleware.GetApartmentID(r.Context())}

	reservation, err := h.service.Cancel(r.Context(), reservationID, actor)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, reservations.ErrAlreadyCancelled):
			handlers.RespondConflict(w, msgAlreadyCancelled)
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)
		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: reservation_id=%d, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, reservation)
}
