package domain

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// DayHours is an opening/closing pair for one weekday class.
type DayHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// IsValid reports whether both ends are set and Close is after Open.
func (h DayHours) IsValid() bool {
	return !h.Open.IsZero() && !h.Close.IsZero() && h.Close.IsAfter(h.Open)
}

// BreakWindow is a time range excluded from booking.
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid reports whether both ends are set and End is after Start.
func (b BreakWindow) IsValid() bool {
	return !b.Start.IsZero() && !b.End.IsZero() && b.End.IsAfter(b.Start)
}

// ScheduleConfig is the weekday-class opening configuration of a court.
// Supports a hierarchy:
// 1. Court-specific (CourtID set)
// 2. Global (CourtID nil)
// 3. Built-in defaults from the config file (ID 0)
//
// Weekend and WeekendBreak override Weekday and Break on Saturdays and Sundays when set.
type ScheduleConfig struct {
	ID                  int64
	CourtID             *int64
	SlotDurationMinutes int

	Weekday      DayHours
	Weekend      *DayHours
	Break        *BreakWindow
	WeekendBreak *BreakWindow

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal reports whether the configuration applies to every court.
func (c *ScheduleConfig) IsGlobal() bool {
	return c.CourtID == nil
}

// IsDefault reports whether the configuration comes from the config file rather than storage.
func (c *ScheduleConfig) IsDefault() bool {
	return c.ID == 0
}

// HoursFor returns the opening hours for the weekday class of date.
func (c *ScheduleConfig) HoursFor(date time.Time) DayHours {
	if IsWeekend(date) && c.Weekend != nil {
		return *c.Weekend
	}
	return c.Weekday
}

// BreakFor returns the break window for the weekday class of date, or nil.
func (c *ScheduleConfig) BreakFor(date time.Time) *BreakWindow {
	if IsWeekend(date) && c.WeekendBreak != nil {
		return c.WeekendBreak
	}
	return c.Break
}

// IsWeekend classifies the calendar date of t. Only the Y-M-D of t is used,
// so no timezone conversion happens.
func IsWeekend(t time.Time) bool {
	switch DateOnly(t).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}
