package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest проверяет входные данные. Квартира проверяется первой.
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ApartmentID) == "" {
		return ErrMissingApartment
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.Validate() != nil || req.EndTime.Validate() != nil {
		return fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: end %s must be after start %s", ErrInvalidTimeRange, req.EndTime, req.StartTime)
	}
	return nil
}

// validateAdvance проверяет окно предварительной записи: minAdvance <= start-now <= maxAdvance
func validateAdvance(startsAt, now time.Time, policy domain.BookingPolicy) error {
	until := startsAt.Sub(now)
	if until < policy.MinAdvance {
		return fmt.Errorf("%w: starts in %s, minimum is %s", ErrTooSoon, until.Round(time.Minute), policy.MinAdvance)
	}
	if policy.MaxAdvance > 0 && until > policy.MaxAdvance {
		return fmt.Errorf("%w: starts in %s, maximum is %s", ErrTooFarAhead, until.Round(time.Minute), policy.MaxAdvance)
	}
	return nil
}
