package list_blockouts

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_blockout"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/blockouts"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCourtNotFound  = "корт не найден"
)

// BlockoutListResponse HTTP response model
type BlockoutListResponse struct {
	Blockouts []create_blockout.BlockoutResponse `json:"blockouts"`
}

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

// Handle GET /api/v1/courts/{courtId}/blockouts?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := strconv.ParseInt(mux.Vars(r)["courtId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}
	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.List(r.Context(), courtID, date)
	if err != nil {
		switch {
		case errors.Is(err, blockouts.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidCourtID)
		case errors.Is(err, blockouts.ErrCourtNotFound):
			handlers.RespondNotFound(w, msgCourtNotFound)
		default:
			h.logger.Error("GET /courts/{id}/blockouts - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := BlockoutListResponse{Blockouts: make([]create_blockout.BlockoutResponse, 0, len(list))}
	for _, b := range list {
		resp.Blockouts = append(resp.Blockouts, create_blockout.FromDomainBlockout(b))
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
