package priority

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Assigner распределяет приоритет для нового бронирования квартиры
type Assigner struct {
	repo ActiveReservationReader
	loc  *time.Location
}

// NewAssigner создает распределитель приоритетов
func NewAssigner(repo ActiveReservationReader, loc *time.Location) *Assigner {
	return &Assigner{repo: repo, loc: loc}
}

// Assign возвращает приоритет, который получит новое бронирование квартиры:
// 0 активных - guaranteed, 1 - provisional, 2 и больше - ErrApartmentAtCapacity.
// Конфликты по слотам здесь не проверяются.
func (a *Assigner) Assign(ctx context.Context, apartmentID string, now time.Time) (domain.Priority, error) {
	active, err := a.repo.GetActiveByApartment(ctx, apartmentID, now.In(a.loc))
	if err != nil {
		return "", fmt.Errorf("%w: get active reservations: %w", ErrInternal, err)
	}
	return Decide(len(active))
}

// Decide maps the size of an apartment's active set to the priority of its next reservation.
func Decide(activeCount int) (domain.Priority, error) {
	switch {
	case activeCount <= 0:
		return domain.PriorityGuaranteed, nil
	case activeCount < domain.MaxActiveReservationsPerApartment:
		return domain.PriorityProvisional, nil
	default:
		return "", ErrApartmentAtCapacity
	}
}
