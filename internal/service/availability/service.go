package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendar"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/priority"
)

// Service собирает доступность слотов корта на дату из хранилища.
// Запросы выполняются последовательно, поэтому сервис можно вызывать внутри транзакции.
type Service struct {
	reservations ReservationRepository
	blockouts    BlockoutRepository
	policy       domain.BookingPolicy
}

// NewService создает сервис доступности
func NewService(reservations ReservationRepository, blockouts BlockoutRepository, policy domain.BookingPolicy) *Service {
	return &Service{reservations: reservations, blockouts: blockouts, policy: policy}
}

// ForCourtDate возвращает аннотированные слоты корта на дату по конфигурации schedule
func (s *Service) ForCourtDate(
	ctx context.Context,
	courtID int64,
	date time.Time,
	schedule *domain.ScheduleConfig,
	now time.Time,
) ([]domain.SlotAvailability, error) {
	// 1. Блокировки
	blockouts, err := s.blockouts.GetByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: get blockouts: %w", ErrInternal, err)
	}

	// 2. Подтвержденные бронирования
	reservations, err := s.reservations.GetByCourtAndDate(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: get reservations: %w", ErrInternal, err)
	}

	// 3. Нормализация приоритетов по квартирам
	normalized, err := s.normalize(ctx, reservations, now)
	if err != nil {
		return nil, err
	}

	// 4-5. Слоты и аннотации
	slots := calendar.Generate(schedule, date)
	return Resolve(slots, blockouts, normalized, date, now, s.policy), nil
}

// normalize заменяет бронирования их нормализованными копиями. Нормализуется полный
// активный набор каждой квартиры, а не только бронирования этого корта.
func (s *Service) normalize(ctx context.Context, reservations []*domain.Reservation, now time.Time) ([]*domain.Reservation, error) {
	if len(reservations) == 0 {
		return reservations, nil
	}

	seen := make(map[string]bool)
	apartments := make([]string, 0)
	for _, r := range reservations {
		if !seen[r.ApartmentID] {
			seen[r.ApartmentID] = true
			apartments = append(apartments, r.ApartmentID)
		}
	}

	active, err := s.reservations.GetActiveByApartments(ctx, apartments, now.In(s.policy.Loc()))
	if err != nil {
		return nil, fmt.Errorf("%w: get active reservations: %w", ErrInternal, err)
	}
	byID := priority.NormalizeAll(active, s.policy.Loc())

	out := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if n, ok := byID[r.ID]; ok {
			out = append(out, n)
			continue
		}
		// уже начавшиеся бронирования не входят в активный набор и остаются как есть
		out = append(out, r)
	}
	return out, nil
}
