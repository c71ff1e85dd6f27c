package update_schedule_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_schedule_config"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidConfig      = "некорректная конфигурация расписания"
)

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

// Handle PUT /api/v1/schedule-config (только администратор)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := req.ToDomainConfig()
	if err != nil {
		h.logger.Warn("PUT /schedule-config - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	saved, err := h.service.Update(r.Context(), cfg)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidConfig) {
			handlers.RespondBadRequest(w, msgInvalidConfig)
			return
		}
		h.logger.Error("PUT /schedule-config - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /schedule-config - Config saved: id=%d, global=%t", saved.ID, saved.IsGlobal())
	handlers.RespondJSON(w, http.StatusOK, get_schedule_config.FromDomainConfig(saved))
}
