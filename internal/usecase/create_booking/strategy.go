package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// Strategy выполняет конвейер "проверка -> вытеснение -> создание".
// book содержит все шаги; стратегия определяет только границы атомарности.
type Strategy interface {
	BookWithDisplacement(ctx context.Context, book func(ctx context.Context) error) error
	Name() string
}

// AtomicStrategy выполняет весь конвейер в одной сериализуемой транзакции.
// Строки корта и квартиры читаются с FOR UPDATE, конфликт сериализации
// возвращается как ErrConcurrentBooking.
type AtomicStrategy struct {
	txManager TransactionManager
}

// NewAtomicStrategy создает атомарную стратегию
func NewAtomicStrategy(txManager TransactionManager) *AtomicStrategy {
	return &AtomicStrategy{txManager: txManager}
}

func (s *AtomicStrategy) Name() string { return "atomic" }

func (s *AtomicStrategy) BookWithDisplacement(ctx context.Context, book func(ctx context.Context) error) error {
	err := s.txManager.DoSerializable(ctx, book)
	if err != nil && txmanager.IsSerializationFailure(err) && !errors.Is(err, ErrConcurrentBooking) {
		return fmt.Errorf("%w: %v", ErrConcurrentBooking, err)
	}
	return err
}

// FallbackStrategy выполняет шаги отдельными запросами без общей транзакции.
// Окно гонки между чтением и записью остается открытым: отмена вытесняемого бронирования,
// не затронувшая ни одной строки, возвращается как ErrDisplacementRaceLost, а не игнорируется.
// Уже выполненные вытеснения при последующей ошибке не откатываются.
type FallbackStrategy struct{}

// NewFallbackStrategy создает стратегию без транзакции
func NewFallbackStrategy() *FallbackStrategy {
	return &FallbackStrategy{}
}

func (s *FallbackStrategy) Name() string { return "fallback" }

func (s *FallbackStrategy) BookWithDisplacement(ctx context.Context, book func(ctx context.Context) error) error {
	return book(ctx)
}
