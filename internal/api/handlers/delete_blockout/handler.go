package delete_blockout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/blockouts"
)

const (
	msgInvalidBlockoutID = "некорректный ID блокировки"
	msgNotFound          = "блокировка не найдена"
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

// Handle DELETE /api/v1/blockouts/{blockoutId} (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockoutID, err := strconv.ParseInt(mux.Vars(r)["blockoutId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockoutID)
		return
	}

	if err := h.service.Delete(r.Context(), blockoutID); err != nil {
		switch {
		case errors.Is(err, blockouts.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBlockoutID)
		case errors.Is(err, blockouts.ErrBlockoutNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("DELETE /blockouts/{id} - Failed: blockout_id=%d, error=%v", blockoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blockouts/{id} - Blockout deleted: blockout_id=%d", blockoutID)
	w.WriteHeader(http.StatusNoContent)
}
