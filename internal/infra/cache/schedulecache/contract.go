package schedulecache

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Provider источник конфигурации расписания за кэшем
type Provider interface {
	GetForCourt(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
