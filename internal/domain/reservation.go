package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ReservationStatus is the stored lifecycle state of a reservation.
// "completed" is never written by the engine; it is derived once the end instant has passed.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Priority is the fairness tier of a reservation.
type Priority string

const (
	PriorityGuaranteed  Priority = "guaranteed"
	PriorityProvisional Priority = "provisional"
)

// Reservation is a booking of consecutive slots on one court by one apartment.
type Reservation struct {
	ID          int64
	CourtID     int64
	CourtName   string // denormalized for history and notifications
	ApartmentID string // the fairness unit
	UserID      int64  // creating user, informational
	UserName    string

	Date            time.Time // calendar date, clock part ignored
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status   ReservationStatus
	Priority Priority

	// Conversion metadata. ConversionAt is when a provisional reservation is due to become
	// guaranteed, ConversionRule the rule that produced it (or that converted it),
	// ConvertedAt when a conversion was written.
	ConversionAt   *time.Time
	ConversionRule *string
	ConvertedAt    *time.Time

	Players []string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartsAt returns the start instant of the reservation in loc.
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.StartTime.On(r.Date, loc)
}

// EndsAt returns the end instant of the reservation in loc.
func (r *Reservation) EndsAt(loc *time.Location) time.Time {
	return r.EndTime.On(r.Date, loc)
}

// IsConfirmed reports whether the stored status is confirmed.
func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

// IsActive reports whether the reservation counts toward its apartment's quota:
// confirmed and starting strictly after now.
func (r *Reservation) IsActive(now time.Time, loc *time.Location) bool {
	return r.IsConfirmed() && r.StartsAt(loc).After(now)
}

// EffectiveStatus derives "completed" for confirmed reservations whose end has passed.
func (r *Reservation) EffectiveStatus(now time.Time, loc *time.Location) ReservationStatus {
	if r.IsConfirmed() && !r.EndsAt(loc).After(now) {
		return StatusCompleted
	}
	return r.Status
}

// Overlaps reports whether [start, end) intersects the reservation on the same date.
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return r.StartTime.IsBefore(end) && start.IsBefore(r.EndTime)
}

// SameSlotStart reports whether the reservation starts at (date, start).
func (r *Reservation) SameSlotStart(date time.Time, start types.TimeString) bool {
	return SameDate(r.Date, date) && r.StartTime.Equal(start)
}

// Clone returns a deep copy, so callers can rewrite derived fields without touching the source.
func (r *Reservation) Clone() *Reservation {
	if r == nil {
		return nil
	}
	c := *r
	if r.Players != nil {
		c.Players = append([]string(nil), r.Players...)
	}
	c.ConversionAt = cloneTime(r.ConversionAt)
	c.ConvertedAt = cloneTime(r.ConvertedAt)
	c.CancelledAt = cloneTime(r.CancelledAt)
	if r.ConversionRule != nil {
		rule := *r.ConversionRule
		c.ConversionRule = &rule
	}
	if r.CancellationReason != nil {
		reason := *r.CancellationReason
		c.CancellationReason = &reason
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// SameDate compares two values as calendar dates, ignoring clock and location.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
