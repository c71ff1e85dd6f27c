package blockouts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BlockoutRepository интерфейс репозитория блокировок
type BlockoutRepository interface {
	Create(ctx context.Context, b *domain.Blockout) (*domain.Blockout, error)
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Blockout, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository читает подтвержденные бронирования корта
type ReservationRepository interface {
	GetByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error)
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Court, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
