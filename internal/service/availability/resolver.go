// Package availability annotates the slots of a court and date with occupancy,
// priority, protection and displaceability.
package availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Resolve annotates every slot of date. Blockouts are checked first: a blocked slot never
// reports a reservation and is never displaceable. Otherwise the first reservation that
// overlaps the slot occupies it.
//
// Reservations must already be normalized. A reservation is protected while its start is
// less than the policy's protection window away from now; a slot is displaceable only when
// its occupant is provisional and not protected.
func Resolve(
	slots []domain.Slot,
	blockouts []*domain.Blockout,
	reservations []*domain.Reservation,
	date time.Time,
	now time.Time,
	policy domain.BookingPolicy,
) []domain.SlotAvailability {
	result := make([]domain.SlotAvailability, 0, len(slots))

	for _, slot := range slots {
		sa := domain.SlotAvailability{Slot: slot}

		if b := firstBlockout(slot, blockouts, date); b != nil {
			sa.Blocked = true
			sa.BlockReason = ptr.Ptr(b.Reason)
			result = append(result, sa)
			continue
		}

		occupant := firstReservation(slot, reservations, date)
		if occupant == nil {
			sa.Available = true
			result = append(result, sa)
			continue
		}

		sa.Reservation = occupant
		sa.Priority = ptr.Ptr(occupant.Priority)
		sa.Protected = policy.IsProtected(occupant.StartsAt(policy.Loc()), now)
		sa.Displaceable = occupant.Priority == domain.PriorityProvisional && !sa.Protected
		result = append(result, sa)
	}

	return result
}

func firstBlockout(slot domain.Slot, blockouts []*domain.Blockout, date time.Time) *domain.Blockout {
	for _, b := range blockouts {
		if domain.SameDate(b.Date, date) && b.Overlaps(slot.Start, slot.End) {
			return b
		}
	}
	return nil
}

func firstReservation(slot domain.Slot, reservations []*domain.Reservation, date time.Time) *domain.Reservation {
	for _, r := range reservations {
		if r.IsConfirmed() && domain.SameDate(r.Date, date) && r.Overlaps(slot.Start, slot.End) {
			return r
		}
	}
	return nil
}
