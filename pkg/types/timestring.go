package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of minutes in a calendar day. "24:00" is a valid
// TimeString and denotes the end of the day.
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned for strings that are not "HH:MM" or "HH:MM:SS".
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when arithmetic leaves the [00:00, 24:00] range.
	ErrTimeOutOfRange = errors.New("time is out of day range")
)

// TimeString is a timezone-naive time of day with minute precision.
// The zero value is "unset" and is not equal to "00:00".
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString extracts the wall-clock time of day from t, truncated to the minute.
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromMinutes builds a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return TimeString{minutes: minutes, valid: true}, nil
}

// NewTimeStringFromString parses "HH:MM" or "HH:MM:SS" (seconds must be zero).
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := parseComponent(parts[0], 24)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := parseComponent(parts[1], 59)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts) == 3 {
		seconds, err := parseComponent(parts[2], 59)
		if err != nil || seconds != 0 {
			return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	total := hours*60 + minutes
	if total > MinutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}

	return TimeString{minutes: total, valid: true}, nil
}

// MustTimeString is NewTimeStringFromString that panics on error.
// Intended for constants and tests.
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseComponent(s string, max int) (int, error) {
	if len(s) != 2 {
		return 0, ErrInvalidTimeString
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > max {
		return 0, ErrInvalidTimeString
	}
	return v, nil
}

// IsZero reports whether the value is unset.
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate returns an error for unset values.
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes > MinutesPerDay {
		return ErrTimeOutOfRange
	}
	return nil
}

// Minutes returns minutes since midnight.
func (t TimeString) Minutes() int {
	return t.minutes
}

// String formats the value as "HH:MM". Unset values format as "".
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// AddMinutes returns t shifted by n minutes. The result must stay within the day.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if !t.valid {
		return TimeString{}, ErrInvalidTimeString
	}
	return NewTimeStringFromMinutes(t.minutes + n)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal reports whether both values are set and denote the same minute.
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// MinutesUntil returns other - t in minutes.
func (t TimeString) MinutesUntil(other TimeString) int {
	return other.minutes - t.minutes
}

// On places the time of day on the calendar date of day in loc.
// Only the year, month and day of day are used. The wall clock is kept on
// daylight-saving changeover days; "24:00" is midnight of the next day.
func (t TimeString) On(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.minutes/60, t.minutes%60, 0, 0, loc)
}

// Value implements driver.Valuer. Unset values are stored as NULL.
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	return t.String(), nil
}

// Scan implements sql.Scanner for TIME / TEXT columns.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres TIME may carry fractional seconds ("10:00:00.000000")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input leaves the value unset.
func (t *TimeString) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = TimeString{}
		return nil
	}
	parsed, err := NewTimeStringFromString(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
