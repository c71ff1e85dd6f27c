package get_schedule_config

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

const msgInvalidCourtID = "некорректный ID корта"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule-config?courtId=N
// Возвращает действующую конфигурацию: корта, глобальную или значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var courtID int64
	if raw := r.URL.Query().Get("courtId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			handlers.RespondBadRequest(w, msgInvalidCourtID)
			return
		}
		courtID = id
	}

	cfg, err := h.service.GetForCourt(r.Context(), courtID)
	if err != nil {
		h.logger.Error("GET /schedule-config - Failed: court_id=%d, error=%v", courtID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(cfg))
}
