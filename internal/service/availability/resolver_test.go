package availability

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendar"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

var (
	day      = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	schedule = &domain.ScheduleConfig{
		SlotDurationMinutes: 30,
		Weekday:             domain.DayHours{Open: types.MustTimeString("08:00"), Close: types.MustTimeString("12:00")},
	}
	policy = domain.DefaultBookingPolicy(time.UTC)
)

func ts(s string) types.TimeString { return types.MustTimeString(s) }

func res(id int64, apartment, start, end string, p domain.Priority) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		CourtID:     1,
		ApartmentID: apartment,
		Date:        day,
		StartTime:   ts(start),
		EndTime:     ts(end),
		Status:      domain.StatusConfirmed,
		Priority:    p,
	}
}

func byStart(slots []domain.SlotAvailability) map[string]domain.SlotAvailability {
	out := make(map[string]domain.SlotAvailability, len(slots))
	for _, s := range slots {
		out[s.Start.String()] = s
	}
	return out
}

func TestResolveBlockoutWins(t *testing.T) {
	now := day.Add(-72 * time.Hour)
	blockouts := []*domain.Blockout{{CourtID: 1, Date: day, StartTime: ts("09:00"), EndTime: ts("10:00"), Reason: "maintenance"}}
	reservations := []*domain.Reservation{res(1, "A", "09:00", "10:00", domain.PriorityProvisional)}

	got := byStart(Resolve(calendar.Generate(schedule, day), blockouts, reservations, day, now, policy))

	for _, start := range []string{"09:00", "09:30"} {
		s := got[start]
		assert.True(t, s.Blocked, start)
		assert.False(t, s.Available, start)
		assert.False(t, s.Displaceable, start)
		assert.Nil(t, s.Reservation, start)
		require.NotNil(t, s.BlockReason)
		assert.Equal(t, "maintenance", *s.BlockReason)
	}
	assert.True(t, got["08:30"].Available)
}

func TestResolveProtectionAndDisplaceability(t *testing.T) {
	reservations := []*domain.Reservation{
		res(1, "A", "08:00", "09:00", domain.PriorityProvisional),
		res(2, "B", "10:00", "11:00", domain.PriorityGuaranteed),
	}

	far := day.Add(-48 * time.Hour)
	got := byStart(Resolve(calendar.Generate(schedule, day), nil, reservations, day, far, policy))
	assert.True(t, got["08:00"].Displaceable)
	assert.True(t, got["08:30"].Displaceable)
	assert.False(t, got["08:00"].Protected)
	assert.False(t, got["10:00"].Displaceable, "guaranteed is never displaceable")
	assert.True(t, got["09:00"].Available)
	assert.Equal(t, domain.PriorityGuaranteed, *got["10:30"].Priority)

	near := day.Add(8*time.Hour - 23*time.Hour)
	got = byStart(Resolve(calendar.Generate(schedule, day), nil, reservations, day, near, policy))
	assert.True(t, got["08:00"].Protected)
	assert.False(t, got["08:00"].Displaceable)
	assert.True(t, got["08:30"].Protected, "protection follows the reservation start")
}

func TestForCourtDateNormalizesAcrossCourts(t *testing.T) {
	store := testutil.NewStore()
	now := day.Add(-72 * time.Hour)

	// the only active reservation of A is stored provisional
	store.Seed(res(0, "A", "08:00", "09:00", domain.PriorityProvisional))
	// B holds two provisionals; the earlier one is on another court
	other := res(0, "B", "07:00", "08:00", domain.PriorityProvisional)
	other.CourtID = 2
	store.Seed(other)
	store.Seed(res(0, "B", "10:00", "11:00", domain.PriorityProvisional))

	svc := NewService(store.ReservationRepo(), store.BlockoutRepo(), policy)
	slots, err := svc.ForCourtDate(context.Background(), 1, day, schedule, now)
	require.NoError(t, err)

	got := byStart(slots)
	assert.Equal(t, domain.PriorityGuaranteed, *got["08:00"].Priority)
	assert.False(t, got["08:00"].Displaceable)
	assert.Equal(t, domain.PriorityProvisional, *got["10:00"].Priority)
	assert.True(t, got["10:00"].Displaceable)
	require.NotNil(t, got["10:00"].Reservation.ConversionAt)
	assert.Equal(t, day.Add(7*time.Hour), *got["10:00"].Reservation.ConversionAt)
}

func TestResolveProtectionOnSpringForwardDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	dstDay := time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)
	sunday := &domain.ScheduleConfig{
		SlotDurationMinutes: 60,
		Weekday:             domain.DayHours{Open: ts("08:00"), Close: ts("12:00")},
	}
	occupant := res(1, "A", "10:00", "11:00", domain.PriorityProvisional)
	occupant.Date = dstDay

	// 10:00 CEST is 08:00 UTC, so 08:30 UTC the day before is 23.5h ahead
	now := time.Date(2026, 3, 28, 8, 30, 0, 0, time.UTC)
	got := byStart(Resolve(calendar.Generate(sunday, dstDay), nil, []*domain.Reservation{occupant},
		dstDay, now, domain.DefaultBookingPolicy(loc)))

	assert.True(t, got["10:00"].Protected)
	assert.False(t, got["10:00"].Displaceable)

	// 25h ahead the same reservation can still be displaced
	got = byStart(Resolve(calendar.Generate(sunday, dstDay), nil, []*domain.Reservation{occupant},
		dstDay, now.Add(-90*time.Minute), domain.DefaultBookingPolicy(loc)))
	assert.False(t, got["10:00"].Protected)
	assert.True(t, got["10:00"].Displaceable)
}
