package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/availability"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/priority"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

var (
	now       = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bookingOn = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
)

type staticSchedule struct{ cfg *domain.ScheduleConfig }

func (s staticSchedule) GetForCourt(context.Context, int64) (*domain.ScheduleConfig, error) {
	cp := *s.cfg
	return &cp, nil
}

type fixture struct {
	store    *testutil.Store
	court    *domain.Court
	notifier *testutil.Notifier
	games    *testutil.GameCanceller
	tx       *testutil.TxManager
	uc       *UseCase
}

func newFixture(t *testing.T, fallback bool) *fixture {
	t.Helper()

	store := testutil.NewStore()
	f := &fixture{
		store:    store,
		court:    store.AddCourt("Court 1"),
		notifier: &testutil.Notifier{},
		games:    &testutil.GameCanceller{},
		tx:       &testutil.TxManager{},
	}

	policy := domain.BookingPolicy{
		MinAdvance:       30 * time.Minute,
		MaxAdvance:       14 * 24 * time.Hour,
		ProtectionWindow: 24 * time.Hour,
		Location:         time.UTC,
	}
	schedule := &domain.ScheduleConfig{
		SlotDurationMinutes: 30,
		Weekday:             domain.DayHours{Open: ts("08:00"), Close: ts("22:00")},
		Break:               &domain.BreakWindow{Start: ts("13:00"), End: ts("14:00")},
	}

	var strategy Strategy = NewAtomicStrategy(f.tx)
	if fallback {
		strategy = NewFallbackStrategy()
	}

	reservations := store.ReservationRepo()
	f.uc = NewUseCase(Deps{
		ReservationRepo:  reservations,
		CourtRepo:        store.CourtRepo(),
		NotificationRepo: store.NotificationRepo(),
		Schedule:         staticSchedule{cfg: schedule},
		Availability:     availability.NewService(reservations, store.BlockoutRepo(), policy),
		Assigner:         priority.NewAssigner(reservations, time.UTC),
		Reconciler:       priority.NewReconciler(reservations, time.UTC, testutil.Logger{}),
		Notifier:         f.notifier,
		Games:            f.games,
		Strategy:         strategy,
		Policy:           policy,
		TimeProvider:     testutil.NewClock(now),
		Logger:           testutil.Logger{},
	})
	return f
}

func ts(s string) types.TimeString { return types.MustTimeString(s) }

func (f *fixture) request(apartment, start, end string) *Request {
	return &Request{
		CourtID:     f.court.ID,
		Date:        bookingOn,
		StartTime:   ts(start),
		EndTime:     ts(end),
		ApartmentID: apartment,
		UserID:      7,
		UserName:    "Ana",
	}
}

func (f *fixture) seed(apartment string, date time.Time, start, end string, p domain.Priority) *domain.Reservation {
	return f.store.Seed(&domain.Reservation{
		CourtID:     f.court.ID,
		CourtName:   f.court.Name,
		ApartmentID: apartment,
		Date:        date,
		StartTime:   ts(start),
		EndTime:     ts(end),
		Status:      domain.StatusConfirmed,
		Priority:    p,
	})
}

func TestFirstBookingIsGuaranteed(t *testing.T) {
	f := newFixture(t, false)

	resp, err := f.uc.Execute(context.Background(), f.request("A-101", "10:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityGuaranteed, resp.Reservation.Priority)
	assert.Equal(t, domain.StatusConfirmed, resp.Reservation.Status)
	assert.Equal(t, 60, resp.Reservation.DurationMinutes)
	assert.Equal(t, "Court 1", resp.Reservation.CourtName)
	assert.Empty(t, resp.Displaced)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestSecondBookingIsProvisionalAndThirdIsRejected(t *testing.T) {
	f := newFixture(t, false)
	f.seed("A-101", bookingOn.AddDate(0, 0, -1), "10:00", "11:00", domain.PriorityGuaranteed)

	resp, err := f.uc.Execute(context.Background(), f.request("A-101", "10:00", "11:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityProvisional, resp.Reservation.Priority)

	stored := f.store.Reservation(resp.Reservation.ID)
	require.NotNil(t, stored.ConversionAt, "reconciler stamps the countdown")

	_, err = f.uc.Execute(context.Background(), f.request("A-101", "15:00", "16:00"))
	assert.ErrorIs(t, err, ErrApartmentAtCapacity)
}

func TestPreconditionsInOrder(t *testing.T) {
	f := newFixture(t, false)

	tests := []struct {
		name string
		req  func() *Request
		want error
	}{
		{"missing apartment wins over a bad range", func() *Request {
			r := f.request("", "11:00", "10:00")
			r.Date = now
			return r
		}, ErrMissingApartment},
		{"empty range", func() *Request { return f.request("A-101", "10:00", "10:00") }, ErrInvalidTimeRange},
		{"too soon", func() *Request {
			r := f.request("A-101", "12:00", "12:30")
			r.Date = now
			return r
		}, ErrTooSoon},
		{"in the past", func() *Request {
			r := f.request("A-101", "08:00", "08:30")
			r.Date = now
			return r
		}, ErrTooSoon},
		{"too far ahead", func() *Request {
			r := f.request("A-101", "10:00", "10:30")
			r.Date = now.AddDate(0, 0, 20)
			return r
		}, ErrTooFarAhead},
		{"unknown court", func() *Request {
			r := f.request("A-101", "10:00", "10:30")
			r.CourtID = 999
			return r
		}, ErrCourtNotFound},
		{"not slot aligned", func() *Request { return f.request("A-101", "10:15", "11:00") }, ErrInvalidTimeRange},
		{"crosses the break", func() *Request { return f.request("A-101", "12:30", "14:30") }, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req())
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.store.Reservations)
}

func TestDuplicateStartForApartment(t *testing.T) {
	f := newFixture(t, false)
	other := f.store.AddCourt("Court 2")
	f.store.Seed(&domain.Reservation{
		CourtID: other.ID, ApartmentID: "A-101", Date: bookingOn,
		StartTime: ts("10:00"), EndTime: ts("11:00"), Priority: domain.PriorityGuaranteed,
	})

	_, err := f.uc.Execute(context.Background(), f.request("A-101", "10:00", "10:30"))
	assert.ErrorIs(t, err, ErrDuplicateSlotForApartment)
}

func TestBlockedSlot(t *testing.T) {
	f := newFixture(t, false)
	_, _ = f.store.BlockoutRepo().Create(context.Background(), &domain.Blockout{
		CourtID: f.court.ID, Date: bookingOn, StartTime: ts("10:30"), EndTime: ts("11:00"), Reason: "repair",
	})

	_, err := f.uc.Execute(context.Background(), f.request("A-101", "10:00", "11:30"))
	assert.ErrorIs(t, err, ErrSlotBlocked)
}

func TestNonDisplaceableOccupant(t *testing.T) {
	t.Run("guaranteed", func(t *testing.T) {
		f := newFixture(t, false)
		f.seed("B-202", bookingOn, "10:00", "11:00", domain.PriorityGuaranteed)

		_, err := f.uc.Execute(context.Background(), f.request("A-101", "10:30", "11:30"))
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("protected provisional", func(t *testing.T) {
		f := newFixture(t, false)
		tomorrow := now.AddDate(0, 0, 1)
		f.seed("B-202", tomorrow, "08:00", "09:00", domain.PriorityGuaranteed)
		f.seed("B-202", tomorrow, "10:00", "11:00", domain.PriorityProvisional)

		r := f.request("A-101", "10:00", "11:00")
		r.Date = tomorrow
		r.ForceDisplacement = true
		_, err := f.uc.Execute(context.Background(), r)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})
}

func TestSameApartmentOverlapIsNeverDisplaced(t *testing.T) {
	f := newFixture(t, false)
	f.seed("A-101", bookingOn.AddDate(0, 0, 1), "08:00", "09:00", domain.PriorityGuaranteed)
	f.seed("A-101", bookingOn, "10:00", "11:00", domain.PriorityProvisional)

	r := f.request("A-101", "10:30", "11:30")
	r.ForceDisplacement = true
	_, err := f.uc.Execute(context.Background(), r)
	assert.ErrorIs(t, err, ErrDuplicateSlotForApartment)
}

func TestDisplacementTwoStepProtocol(t *testing.T) {
	f := newFixture(t, false)
	f.seed("B-202", bookingOn.AddDate(0, 0, 1), "08:00", "09:00", domain.PriorityGuaranteed)
	victim := f.seed("B-202", bookingOn, "10:00", "11:30", domain.PriorityProvisional)

	// step 1: no force, no mutation
	req := f.request("A-101", "10:00", "11:30")
	_, err := f.uc.Execute(context.Background(), req)

	var confirm *ConfirmationRequiredError
	require.True(t, errors.As(err, &confirm))
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.Equal(t, victim.ID, confirm.Candidate.ID)
	assert.Equal(t, 1, confirm.Candidates, "one reservation spanning three slots is one candidate")
	assert.Equal(t, domain.StatusConfirmed, f.store.Reservation(victim.ID).Status)
	assert.Empty(t, f.store.Notifications)

	// step 2: explicit confirmation
	req.ForceDisplacement = true
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityGuaranteed, resp.Reservation.Priority)
	require.Len(t, resp.Displaced, 1)
	assert.Equal(t, victim.ID, resp.Displaced[0].ID)

	cancelled := f.store.Reservation(victim.ID)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.Equal(t, domain.CancelReasonDisplaced, *cancelled.CancellationReason)

	require.Len(t, f.store.Notifications, 1)
	assert.Equal(t, "B-202", f.store.Notifications[0].RecipientApartmentID)
	assert.Equal(t, "A-101", f.store.Notifications[0].DisplacingApartment)
	require.Len(t, f.notifier.Sent, 1)
	assert.Equal(t, domain.CancelReasonDisplaced, f.games.Cancelled[victim.ID])
}

func TestDisplacementDedupAcrossReservations(t *testing.T) {
	f := newFixture(t, false)
	first := f.seed("B-202", bookingOn, "10:00", "10:30", domain.PriorityProvisional)
	f.seed("B-202", bookingOn.AddDate(0, 0, -1), "20:00", "21:00", domain.PriorityGuaranteed)
	second := f.seed("C-303", bookingOn, "10:30", "11:30", domain.PriorityProvisional)
	f.seed("C-303", bookingOn.AddDate(0, 0, -1), "20:00", "21:00", domain.PriorityGuaranteed)

	r := f.request("A-101", "10:00", "11:30")
	r.ForceDisplacement = true
	resp, err := f.uc.Execute(context.Background(), r)
	require.NoError(t, err)

	require.Len(t, resp.Displaced, 2)
	assert.Equal(t, first.ID, resp.Displaced[0].ID)
	assert.Equal(t, second.ID, resp.Displaced[1].ID)
	assert.Len(t, f.store.Notifications, 2)
}

func TestCapacityEnforcedBeforeDisplacement(t *testing.T) {
	f := newFixture(t, false)
	f.seed("A-101", bookingOn.AddDate(0, 0, 1), "08:00", "09:00", domain.PriorityGuaranteed)
	f.seed("A-101", bookingOn.AddDate(0, 0, 2), "08:00", "09:00", domain.PriorityProvisional)
	f.seed("B-202", bookingOn.AddDate(0, 0, 1), "18:00", "19:00", domain.PriorityGuaranteed)
	victim := f.seed("B-202", bookingOn, "10:00", "11:00", domain.PriorityProvisional)

	r := f.request("A-101", "10:00", "11:00")
	r.ForceDisplacement = true
	_, err := f.uc.Execute(context.Background(), r)

	assert.ErrorIs(t, err, ErrApartmentAtCapacity)
	assert.Equal(t, domain.StatusConfirmed, f.store.Reservation(victim.ID).Status)
}

func TestFallbackDetectsLostRace(t *testing.T) {
	f := newFixture(t, true)
	f.seed("B-202", bookingOn.AddDate(0, 0, 1), "08:00", "09:00", domain.PriorityGuaranteed)
	victim := f.seed("B-202", bookingOn, "10:00", "11:00", domain.PriorityProvisional)

	// another request cancels the victim between the read and the update
	f.store.BeforeCancel = func(id int64) {
		f.store.BeforeCancel = nil
		_, _ = f.store.ReservationRepo().CancelIfConfirmed(context.Background(), id, "concurrent", now)
	}

	r := f.request("A-101", "10:00", "11:00")
	r.ForceDisplacement = true
	_, err := f.uc.Execute(context.Background(), r)

	assert.ErrorIs(t, err, ErrDisplacementRaceLost)
	assert.Equal(t, "concurrent", *f.store.Reservation(victim.ID).CancellationReason)
	assert.Len(t, f.store.Reservations, 2, "nothing was created")
	assert.Zero(t, f.tx.Calls)
}

func TestCollaboratorFailuresDoNotFailBooking(t *testing.T) {
	f := newFixture(t, false)
	f.notifier.Err = errors.New("broker down")
	f.games.Err = errors.New("game service down")
	f.seed("B-202", bookingOn.AddDate(0, 0, 1), "08:00", "09:00", domain.PriorityGuaranteed)
	f.seed("B-202", bookingOn, "10:00", "11:00", domain.PriorityProvisional)

	r := f.request("A-101", "10:00", "11:00")
	r.ForceDisplacement = true
	resp, err := f.uc.Execute(context.Background(), r)

	require.NoError(t, err)
	assert.NotZero(t, resp.Reservation.ID)
}

type failingTx struct{ err error }

func (f failingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

func TestAtomicStrategyMapsSerializationFailure(t *testing.T) {
	s := NewAtomicStrategy(failingTx{err: &pq.Error{Code: "40001"}})

	err := s.BookWithDisplacement(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrConcurrentBooking)

	s = NewAtomicStrategy(failingTx{})
	err = s.BookWithDisplacement(context.Background(), func(context.Context) error { return ErrSlotBlocked })
	assert.ErrorIs(t, err, ErrSlotBlocked)
	assert.NotErrorIs(t, err, ErrConcurrentBooking)
}
