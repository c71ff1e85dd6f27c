package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Request модель запроса доступности
type Request struct {
	CourtID int64
	Date    time.Time
}

// Response модель ответа с аннотированными слотами
type Response struct {
	Court               *domain.Court
	Date                time.Time
	SlotDurationMinutes int
	Slots               []domain.SlotAvailability
}
