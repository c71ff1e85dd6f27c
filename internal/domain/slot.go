package domain

import "github.com/m04kA/SMC-CourtBookingService/pkg/types"

// Slot is a computed [Start, End) interval of the schedule calendar. Never persisted.
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps reports half-open interval intersection with [start, end).
func (s Slot) Overlaps(start, end types.TimeString) bool {
	return s.Start.IsBefore(end) && start.IsBefore(s.End)
}

// SlotAvailability is the resolved state of one slot of a court on a date.
type SlotAvailability struct {
	Slot
	Available    bool
	Blocked      bool
	BlockReason  *string
	Reservation  *Reservation // occupying reservation, normalized; nil when free
	Priority     *Priority
	Displaceable bool
	Protected    bool
}
