package domain

import "time"

// BookingPolicy holds the time rules of the booking transaction and the resolver.
type BookingPolicy struct {
	MinAdvance       time.Duration
	MaxAdvance       time.Duration
	ProtectionWindow time.Duration
	Location         *time.Location
}

// IsProtected reports whether something starting at start is inside the protection window at now.
func (p BookingPolicy) IsProtected(start, now time.Time) bool {
	return start.Sub(now) < p.ProtectionWindow
}

// Loc returns the policy location, UTC when unset.
func (p BookingPolicy) Loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// DefaultBookingPolicy returns the reference policy in loc.
func DefaultBookingPolicy(loc *time.Location) BookingPolicy {
	return BookingPolicy{
		MinAdvance:       0,
		MaxAdvance:       14 * 24 * time.Hour,
		ProtectionWindow: DefaultProtectionWindowHours * time.Hour,
		Location:         loc,
	}
}
