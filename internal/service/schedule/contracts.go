package schedule

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Repository интерфейс репозитория конфигурации расписания
type Repository interface {
	GetWithHierarchy(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error)
	Upsert(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
