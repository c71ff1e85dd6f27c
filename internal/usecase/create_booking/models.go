package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса на бронирование корта
type Request struct {
	CourtID           int64
	Date              time.Time        // Дата (без времени)
	StartTime         types.TimeString // Начало, граница слота
	EndTime           types.TimeString // Конец, граница слота
	ApartmentID       string           // Квартира - единица квоты
	UserID            int64            // Автор бронирования (информационно)
	UserName          string
	Players           []string
	ForceDisplacement bool // Подтверждение вытеснения чужих предварительных бронирований
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Displaced   []*domain.Reservation // Вытесненные бронирования (уже отменены)
}

// Результаты для метрик
const (
	resultCreated              = "created"
	resultDisplaced            = "created_with_displacement"
	resultConfirmationRequired = "confirmation_required"
	resultRejected             = "rejected"
	resultRaceLost             = "race_lost"
	resultError                = "error"
)
