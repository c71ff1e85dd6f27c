// Package priority decides and corrects the fairness tier of apartment reservations.
package priority

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Normalize applies the conversion rule to the active set of ONE apartment and returns
// corrected copies ordered by (date, start time). The input is never modified.
//
//   - one reservation: it is guaranteed
//   - two or more with a guaranteed one: stored priorities are kept
//   - two or more without a guaranteed one: the earliest becomes guaranteed
//
// A provisional reservation that starts after the guaranteed one gets a conversion countdown
// pointing at the guaranteed start. The function is idempotent.
func Normalize(active []*domain.Reservation, loc *time.Location) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, len(active))
	for _, r := range active {
		out = append(out, r.Clone())
	}
	if len(out) == 0 {
		return out
	}
	sortChronologically(out)

	if len(out) == 1 {
		if out[0].Priority != domain.PriorityGuaranteed {
			promote(out[0], domain.ConversionSoleActive)
		}
		return out
	}

	var guaranteed *domain.Reservation
	for _, r := range out {
		if r.Priority == domain.PriorityGuaranteed {
			guaranteed = r
			break
		}
	}
	if guaranteed == nil {
		guaranteed = out[0]
		promote(guaranteed, domain.ConversionEarliestActive)
	}

	conversionAt := guaranteed.StartsAt(loc)
	for _, r := range out {
		if r.Priority != domain.PriorityProvisional {
			continue
		}
		// countdown only makes sense while the guaranteed one starts first
		if conversionAt.Before(r.StartsAt(loc)) {
			r.ConversionAt = ptr.Ptr(conversionAt)
			r.ConversionRule = ptr.Ptr(domain.ConversionAfterGuaranteedStart)
		} else {
			r.ConversionAt = nil
			r.ConversionRule = nil
		}
	}
	return out
}

// NormalizeAll groups reservations by apartment, normalizes every group and indexes the
// result by reservation id.
func NormalizeAll(active []*domain.Reservation, loc *time.Location) map[int64]*domain.Reservation {
	byApartment := make(map[string][]*domain.Reservation)
	for _, r := range active {
		byApartment[r.ApartmentID] = append(byApartment[r.ApartmentID], r)
	}

	result := make(map[int64]*domain.Reservation, len(active))
	for _, group := range byApartment {
		for _, r := range Normalize(group, loc) {
			result[r.ID] = r
		}
	}
	return result
}

func promote(r *domain.Reservation, rule string) {
	r.Priority = domain.PriorityGuaranteed
	r.ConversionAt = nil
	r.ConversionRule = ptr.Ptr(rule)
}

func sortChronologically(rs []*domain.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		di, dj := domain.DateOnly(rs[i].Date), domain.DateOnly(rs[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if !rs[i].StartTime.Equal(rs[j].StartTime) {
			return rs[i].StartTime.IsBefore(rs[j].StartTime)
		}
		return rs[i].ID < rs[j].ID
	})
}
