package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	blockoutRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/blockout"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Store is an in-memory stand-in for the Postgres repositories. It returns the same
// sentinel errors as the real ones and enforces the apartment-slot uniqueness and
// court-overlap constraints on Create.
type Store struct {
	mu sync.Mutex

	Courts        map[int64]*domain.Court
	Reservations  map[int64]*domain.Reservation
	Blockouts     map[int64]*domain.Blockout
	Notifications []*domain.DisplacementNotification
	Schedules     []*domain.ScheduleConfig

	// BeforeCancel runs before CancelIfConfirmed touches a reservation, outside the lock.
	// Tests use it to simulate a concurrent writer.
	BeforeCancel func(id int64)

	nextID int64
}

func NewStore() *Store {
	return &Store{
		Courts:       make(map[int64]*domain.Court),
		Reservations: make(map[int64]*domain.Reservation),
		Blockouts:    make(map[int64]*domain.Blockout),
	}
}

// Repository views over the same data, named the way the services expect.
type (
	ReservationRepo  struct{ *Store }
	BlockoutRepo     struct{ *Store }
	NotificationRepo struct{ *Store }
	CourtRepo        struct{ *Store }
	ScheduleRepo     struct{ *Store }
)

func (s *Store) ReservationRepo() ReservationRepo   { return ReservationRepo{s} }
func (s *Store) BlockoutRepo() BlockoutRepo         { return BlockoutRepo{s} }
func (s *Store) NotificationRepo() NotificationRepo { return NotificationRepo{s} }
func (s *Store) CourtRepo() CourtRepo               { return CourtRepo{s} }
func (s *Store) ScheduleRepo() ScheduleRepo         { return ScheduleRepo{s} }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddCourt registers an active court.
func (s *Store) AddCourt(name string) *domain.Court {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Court{ID: s.id(), Name: name, IsActive: true}
	s.Courts[c.ID] = c
	return c
}

// Seed inserts a reservation as-is, bypassing constraints.
func (s *Store) Seed(r *domain.Reservation) *domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.id()
	}
	if r.Status == "" {
		r.Status = domain.StatusConfirmed
	}
	s.Reservations[r.ID] = r.Clone()
	return r
}

// Reservation returns a copy of the stored reservation.
func (s *Store) Reservation(id int64) *domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Reservations[id].Clone()
}

func (s CourtRepo) GetByID(_ context.Context, id int64) (*domain.Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.Courts[id]
	if !ok || !c.IsActive {
		return nil, courtRepo.ErrCourtNotFound
	}
	cp := *c
	return &cp, nil
}

func (s ReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.Reservations {
		if !existing.IsConfirmed() || !domain.SameDate(existing.Date, r.Date) {
			continue
		}
		if existing.ApartmentID == r.ApartmentID && existing.StartTime.Equal(r.StartTime) {
			return nil, reservationRepo.ErrDuplicateForApartment
		}
		if existing.CourtID == r.CourtID && existing.Overlaps(r.StartTime, r.EndTime) {
			return nil, reservationRepo.ErrCourtOverlap
		}
	}

	r.ID = s.id()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	if r.Players == nil {
		r.Players = []string{}
	}
	s.Reservations[r.ID] = r.Clone()
	return r, nil
}

func (s ReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.Reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r.Clone(), nil
}

func (s ReservationRepo) GetByCourtAndDate(_ context.Context, courtID int64, date time.Time) ([]*domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool {
		return r.IsConfirmed() && r.CourtID == courtID && domain.SameDate(r.Date, date)
	}), nil
}

func (s ReservationRepo) GetActiveByApartment(_ context.Context, apartmentID string, now time.Time) ([]*domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool {
		return r.ApartmentID == apartmentID && isActive(r, now)
	}), nil
}

func (s ReservationRepo) GetActiveByApartments(_ context.Context, apartmentIDs []string, now time.Time) ([]*domain.Reservation, error) {
	wanted := make(map[string]bool, len(apartmentIDs))
	for _, id := range apartmentIDs {
		wanted[id] = true
	}
	return s.filter(func(r *domain.Reservation) bool {
		return wanted[r.ApartmentID] && isActive(r, now)
	}), nil
}

func (s ReservationRepo) ExistsForApartmentAt(_ context.Context, apartmentID string, date time.Time, start types.TimeString) (bool, error) {
	found := s.filter(func(r *domain.Reservation) bool {
		return r.IsConfirmed() && r.ApartmentID == apartmentID && r.SameSlotStart(date, start)
	})
	return len(found) > 0, nil
}

func (s ReservationRepo) CancelIfConfirmed(_ context.Context, id int64, reason string, at time.Time) (bool, error) {
	if s.BeforeCancel != nil {
		s.BeforeCancel(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.Reservations[id]
	if !ok || !r.IsConfirmed() {
		return false, nil
	}
	r.Status = domain.StatusCancelled
	r.CancellationReason = &reason
	cancelledAt := at
	r.CancelledAt = &cancelledAt
	return true, nil
}

func (s ReservationRepo) UpdatePriority(_ context.Context, upd *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.Reservations[upd.ID]
	if !ok || !r.IsConfirmed() {
		return nil
	}
	c := upd.Clone()
	r.Priority = c.Priority
	r.ConversionAt = c.ConversionAt
	r.ConversionRule = c.ConversionRule
	if c.ConvertedAt != nil {
		r.ConvertedAt = c.ConvertedAt
	}
	return nil
}

// isActive compares against the wall-clock fields of now, the way the SQL query does.
func isActive(r *domain.Reservation, now time.Time) bool {
	if !r.IsConfirmed() {
		return false
	}
	today := domain.DateOnly(now)
	date := domain.DateOnly(r.Date)
	if date.After(today) {
		return true
	}
	return date.Equal(today) && r.StartTime.Minutes()*60 > now.Hour()*3600+now.Minute()*60+now.Second()
}

func (s *Store) filter(keep func(r *domain.Reservation) bool) []*domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Reservation, 0)
	for _, r := range s.Reservations {
		if keep(r) {
			out = append(out, r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !domain.SameDate(out[i].Date, out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.IsBefore(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s NotificationRepo) Create(_ context.Context, n *domain.DisplacementNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.id()
	cp := *n
	s.Notifications = append(s.Notifications, &cp)
	return nil
}

func (s NotificationRepo) GetByApartment(_ context.Context, apartmentID string, limit uint64) ([]*domain.DisplacementNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.DisplacementNotification, 0)
	for i := len(s.Notifications) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		if n := s.Notifications[i]; n.RecipientApartmentID == apartmentID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s BlockoutRepo) Create(_ context.Context, b *domain.Blockout) (*domain.Blockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	cp := *b
	s.Blockouts[b.ID] = &cp
	return b, nil
}

func (s BlockoutRepo) GetByID(_ context.Context, id int64) (*domain.Blockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Blockouts[id]
	if !ok {
		return nil, blockoutRepo.ErrBlockoutNotFound
	}
	cp := *b
	return &cp, nil
}

func (s BlockoutRepo) GetByCourtAndDate(_ context.Context, courtID int64, date time.Time) ([]*domain.Blockout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Blockout, 0)
	for _, b := range s.Blockouts {
		if b.CourtID == courtID && domain.SameDate(b.Date, date) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.IsBefore(out[j].StartTime) })
	return out, nil
}

func (s BlockoutRepo) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Blockouts[id]; !ok {
		return blockoutRepo.ErrBlockoutNotFound
	}
	delete(s.Blockouts, id)
	return nil
}

func (s ScheduleRepo) GetWithHierarchy(_ context.Context, courtID int64) (*domain.ScheduleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var global *domain.ScheduleConfig
	for _, c := range s.Schedules {
		if c.CourtID != nil && *c.CourtID == courtID && courtID != 0 {
			cp := *c
			return &cp, nil
		}
		if c.CourtID == nil {
			global = c
		}
	}
	if global == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	cp := *global
	return &cp, nil
}

func (s ScheduleRepo) Upsert(_ context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.Schedules {
		if (c.CourtID == nil && cfg.CourtID == nil) || (c.CourtID != nil && cfg.CourtID != nil && *c.CourtID == *cfg.CourtID) {
			cfg.ID = c.ID
			cp := *cfg
			s.Schedules[i] = &cp
			return cfg, nil
		}
	}
	cfg.ID = s.id()
	cp := *cfg
	s.Schedules = append(s.Schedules, &cp)
	return cfg, nil
}
