package priority

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Reconciler записывает результат нормализации в хранилище.
// Вызывается после создания, вытеснения и отмены бронирований квартиры.
type Reconciler struct {
	repo   ReservationRepository
	loc    *time.Location
	logger Logger
}

// NewReconciler создает новый экземпляр reconciler
func NewReconciler(repo ReservationRepository, loc *time.Location, logger Logger) *Reconciler {
	return &Reconciler{repo: repo, loc: loc, logger: logger}
}

// Reconcile приводит сохраненные приоритеты квартиры к нормализованным.
// Возвращает количество обновленных бронирований.
func (r *Reconciler) Reconcile(ctx context.Context, apartmentID string, now time.Time) (int, error) {
	stored, err := r.repo.GetActiveByApartment(ctx, apartmentID, now.In(r.loc))
	if err != nil {
		return 0, fmt.Errorf("%w: get active reservations: %w", ErrInternal, err)
	}

	byID := make(map[int64]*domain.Reservation, len(stored))
	for _, s := range stored {
		byID[s.ID] = s
	}

	updated := 0
	for _, n := range Normalize(stored, r.loc) {
		s := byID[n.ID]
		if !changed(s, n) {
			continue
		}
		if s.Priority == domain.PriorityProvisional && n.Priority == domain.PriorityGuaranteed {
			n.ConvertedAt = ptr.Ptr(now)
		}
		if err := r.repo.UpdatePriority(ctx, n); err != nil {
			return updated, fmt.Errorf("%w: update reservation id=%d: %w", ErrInternal, n.ID, err)
		}
		updated++
		r.logger.Info("Reconcile: apartment=%s reservation id=%d priority %s -> %s",
			apartmentID, n.ID, s.Priority, n.Priority)
	}
	return updated, nil
}

func changed(stored, normalized *domain.Reservation) bool {
	if stored.Priority != normalized.Priority {
		return true
	}
	if ptr.Value(stored.ConversionRule) != ptr.Value(normalized.ConversionRule) {
		return true
	}
	switch {
	case stored.ConversionAt == nil && normalized.ConversionAt == nil:
		return false
	case stored.ConversionAt == nil || normalized.ConversionAt == nil:
		return true
	default:
		return !stored.ConversionAt.Equal(*normalized.ConversionAt)
	}
}
