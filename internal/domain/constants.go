package domain

const (
	// DateFormat is the calendar date format used in storage and on the wire
	DateFormat = "2006-01-02"

	// MaxActiveReservationsPerApartment caps the active (future, confirmed) set of an apartment
	MaxActiveReservationsPerApartment = 2

	// DefaultSlotDurationMinutes is the slot width of the reference policy
	DefaultSlotDurationMinutes = 30

	// DefaultProtectionWindowHours is how long before its start a reservation can no longer be displaced
	DefaultProtectionWindowHours = 24
)

// Conversion rule tags stored in reservations.conversion_rule
const (
	// ConversionAfterGuaranteedStart marks a provisional reservation that converts once
	// its apartment's guaranteed reservation starts.
	ConversionAfterGuaranteedStart = "after_guaranteed_start"

	// ConversionSoleActive marks a reservation promoted because it is the only active one left.
	ConversionSoleActive = "sole_active"

	// ConversionEarliestActive marks a reservation promoted because it is the earliest active one.
	ConversionEarliestActive = "earliest_active"
)

// Cancellation reason tags
const (
	CancelReasonUser      = "cancelled_by_user"
	CancelReasonDisplaced = "displaced"
)
