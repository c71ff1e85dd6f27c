package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Blockout is an administrative exclusion of a time range on one court and date.
// Immutable once created; can only be deleted.
type Blockout struct {
	ID        int64
	CourtID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
	CreatedBy int64
	CreatedAt time.Time
}

// Overlaps reports half-open interval intersection with [start, end).
func (b *Blockout) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && start.IsBefore(b.EndTime)
}
