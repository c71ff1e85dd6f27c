package create_blockout

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/blockouts"
)

type BlockoutService interface {
	Create(ctx context.Context, req *blockouts.CreateRequest) (*domain.Blockout, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
