package update_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type ScheduleService interface {
	Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
