package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

func TestReservationLifecycleHelpers(t *testing.T) {
	loc := time.UTC
	r := &Reservation{
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, loc),
		StartTime: types.MustTimeString("10:00"),
		EndTime:   types.MustTimeString("11:00"),
		Status:    StatusConfirmed,
	}

	before := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	during := time.Date(2026, 3, 10, 10, 30, 0, 0, loc)
	after := time.Date(2026, 3, 10, 11, 0, 0, 0, loc)

	assert.True(t, r.IsActive(before, loc))
	assert.False(t, r.IsActive(during, loc))
	assert.Equal(t, StatusConfirmed, r.EffectiveStatus(during, loc))
	assert.Equal(t, StatusCompleted, r.EffectiveStatus(after, loc))

	r.Status = StatusCancelled
	assert.Equal(t, StatusCancelled, r.EffectiveStatus(after, loc))
}

func TestReservationOverlapsIsHalfOpen(t *testing.T) {
	r := &Reservation{StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00")}

	assert.True(t, r.Overlaps(types.MustTimeString("10:30"), types.MustTimeString("11:30")))
	assert.False(t, r.Overlaps(types.MustTimeString("11:00"), types.MustTimeString("11:30")))
	assert.False(t, r.Overlaps(types.MustTimeString("09:30"), types.MustTimeString("10:00")))
}

func TestCloneIsDeep(t *testing.T) {
	rule := ConversionSoleActive
	r := &Reservation{Players: []string{"a"}, ConversionRule: &rule}

	c := r.Clone()
	c.Players[0] = "b"
	*c.ConversionRule = ConversionEarliestActive

	assert.Equal(t, "a", r.Players[0])
	assert.Equal(t, ConversionSoleActive, *r.ConversionRule)
}

func TestScheduleConfigWeekendOverrides(t *testing.T) {
	cfg := &ScheduleConfig{
		Weekday: DayHours{Open: types.MustTimeString("07:00"), Close: types.MustTimeString("22:00")},
		Weekend: &DayHours{Open: types.MustTimeString("09:00"), Close: types.MustTimeString("20:00")},
		Break:   &BreakWindow{Start: types.MustTimeString("13:00"), End: types.MustTimeString("14:00")},
	}
	saturday := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "09:00", cfg.HoursFor(saturday).Open.String())
	assert.Equal(t, "07:00", cfg.HoursFor(monday).Open.String())
	// weekend break falls back to the common break
	assert.Equal(t, "13:00", cfg.BreakFor(saturday).Start.String())
}

func TestIsWeekendIgnoresLocation(t *testing.T) {
	// 23:30 on Friday in UTC-5 is Saturday in UTC, but the calendar date is Friday
	loc := time.FixedZone("EST", -5*3600)
	friday := time.Date(2026, 3, 13, 23, 30, 0, 0, loc)

	assert.False(t, IsWeekend(friday))
}

func TestBookingPolicyProtection(t *testing.T) {
	p := DefaultBookingPolicy(time.UTC)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, p.IsProtected(now.Add(23*time.Hour), now))
	assert.False(t, p.IsProtected(now.Add(24*time.Hour), now))
}
