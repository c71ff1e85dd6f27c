package get_schedule_config

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type ScheduleService interface {
	GetForCourt(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
