package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgMissingApartment     = "не указана квартира пользователя"
	msgTooSoon              = "слишком поздно для бронирования этого времени"
	msgTooFarAhead          = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeRange     = "диапазон должен совпадать с границами слотов расписания"
	msgInvalidInput         = "некорректные данные бронирования"
	msgCourtNotFound        = "корт не найден"
	msgSlotBlocked          = "время закрыто администратором"
	msgSlotUnavailable      = "время занято"
	msgDuplicate            = "у квартиры уже есть бронирование на это время"
	msgAtCapacity           = "у квартиры уже максимальное число активных бронирований"
	msgConfirmationRequired = "бронирование вытеснит предварительное бронирование другой квартиры, требуется подтверждение"
	msgRaceLost             = "бронирование изменилось во время обработки, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}
	useCaseReq.UserID = userID
	useCaseReq.UserName = middleware.GetUserName(r.Context())
	useCaseReq.ApartmentID = middleware.GetApartmentID(r.Context())

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, useCaseReq, err)
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, apartment=%s, priority=%s, displaced=%d",
		result.Reservation.ID, result.Reservation.ApartmentID, result.Reservation.Priority, len(result.Displaced))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, req *createBooking.Request, err error) {
	var confirmation *createBooking.ConfirmationRequiredError

	switch {
	case errors.As(err, &confirmation):
		h.logger.Info("POST /reservations - Confirmation required: apartment=%s, candidate=%d",
			req.ApartmentID, confirmation.Candidate.ID)
		handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
			Code:                 http.StatusConflict,
			Message:              msgConfirmationRequired,
			ConfirmationRequired: true,
			Candidate:            FromDomainReservation(confirmation.Candidate),
			Candidates:           confirmation.Candidates,
		})

	case errors.Is(err, createBooking.ErrDisplacementRaceLost), errors.Is(err, createBooking.ErrConcurrentBooking):
		h.logger.Warn("POST /reservations - Lost a concurrent race: apartment=%s, error=%v", req.ApartmentID, err)
		handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
			Code:    http.StatusConflict,
			Message: msgRaceLost,
			Retry:   true,
		})

	case errors.Is(err, createBooking.ErrMissingApartment):
		handlers.RespondBadRequest(w, msgMissingApartment)
	case errors.Is(err, createBooking.ErrTooSoon):
		handlers.RespondBadRequest(w, msgTooSoon)
	case errors.Is(err, createBooking.ErrTooFarAhead):
		handlers.RespondBadRequest(w, msgTooFarAhead)
	case errors.Is(err, createBooking.ErrInvalidTimeRange):
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrCourtNotFound):
		handlers.RespondNotFound(w, msgCourtNotFound)

	case errors.Is(err, createBooking.ErrSlotBlocked):
		handlers.RespondConflict(w, msgSlotBlocked)
	case errors.Is(err, createBooking.ErrSlotUnavailable):
		handlers.RespondConflict(w, msgSlotUnavailable)
	case errors.Is(err, createBooking.ErrDuplicateSlotForApartment):
		handlers.RespondConflict(w, msgDuplicate)
	case errors.Is(err, createBooking.ErrApartmentAtCapacity):
		handlers.RespondConflict(w, msgAtCapacity)

	default:
		h.logger.Error("POST /reservations - Failed to create reservation: court=%d, apartment=%s, error=%v",
			req.CourtID, req.ApartmentID, err)
		handlers.RespondInternalError(w)
	}
}
