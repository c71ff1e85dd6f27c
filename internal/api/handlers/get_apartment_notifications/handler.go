package get_apartment_notifications

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidInput  = "некорректный ID квартиры"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/apartments/{apartmentId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	apartmentID := mux.Vars(r)["apartmentId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actor := models.Actor{UserID: userID, ApartmentID: middleware.GetApartmentID(r.Context())}

	list, err := h.service.GetNotifications(r.Context(), apartmentID, actor)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, reservations.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)
		default:
			h.logger.Error("GET /apartments/{id}/notifications - Failed: apartment=%s, error=%v", apartmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
