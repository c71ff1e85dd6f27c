package create_blockout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/blockouts"
)

const (
	msgInvalidCourtID      = "некорректный ID корта"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidInput        = "время окончания должно быть позже времени начала"
	msgCourtNotFound       = "корт не найден"
	msgOverlapsReservation = "на это время есть подтвержденное бронирование, сначала отмените его"
)

type Handler struct {
	service BlockoutService
	logger  Logger
}

func NewHandler(service BlockoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/courts/{courtId}/blockouts (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["courtId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	var req CreateBlockoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /courts/{id}/blockouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())
	serviceReq, err := req.ToServiceRequest(courtID, userID)
	if err != nil {
		h.logger.Warn("POST /courts/{id}/blockouts - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	blockout, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blockouts.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, blockouts.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)
		case errors.Is(err, blockouts.ErrOverlapsReservation):
			handlers.RespondConflict(w, msgOverlapsReservation)
		default:
			h.logger.Error("POST /courts/{id}/blockouts - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /courts/{id}/blockouts - Blockout created: id=%d, court_id=%d, by user=%d", blockout.ID, courtID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainBlockout(blockout))
}
