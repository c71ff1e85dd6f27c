package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// ScheduleProvider отдает действующую конфигурацию расписания корта
type ScheduleProvider interface {
	GetForCourt(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error)
}

// AvailabilityResolver аннотирует слоты корта на дату
type AvailabilityResolver interface {
	ForCourtDate(ctx context.Context, courtID int64, date time.Time, schedule *domain.ScheduleConfig, now time.Time) ([]domain.SlotAvailability, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
