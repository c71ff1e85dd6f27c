package list_blockouts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type BlockoutService interface {
	List(ctx context.Context, courtID int64, date time.Time) ([]*domain.Blockout, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
