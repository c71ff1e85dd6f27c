package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCourtNotFound  = "корт не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["courtId"], 10, 64)
	if err != nil || courtID <= 0 {
		h.logger.Warn("GET /courts/{id}/availability - Invalid court ID: %q", mux.Vars(r)["courtId"])
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{CourtID: courtID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/availability - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)
		case errors.Is(err, getAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /courts/{id}/availability - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
