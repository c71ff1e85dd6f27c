// Package calendar produces the bookable slots of a court for a calendar date.
package calendar

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// ErrRangeNotCovered возвращается, когда [start, end) нельзя собрать из последовательных слотов дня
var ErrRangeNotCovered = errors.New("calendar: range is not covered by consecutive slots")

// Generate генерирует слоты дня с фиксированным шагом cfg.SlotDurationMinutes на [open, close).
// Слот, пересекающийся с перерывом, исключается целиком.
// Некорректные часы работы (close <= open, пустые значения) дают пустой результат.
// Дата классифицируется как будний/выходной по календарной дате, без перевода часовых поясов.
func Generate(cfg *domain.ScheduleConfig, date time.Time) []domain.Slot {
	if cfg == nil || cfg.SlotDurationMinutes <= 0 {
		return []domain.Slot{}
	}

	hours := cfg.HoursFor(date)
	if !hours.IsValid() {
		return []domain.Slot{}
	}
	brk := cfg.BreakFor(date)

	slots := make([]domain.Slot, 0, hours.Open.MinutesUntil(hours.Close)/cfg.SlotDurationMinutes)
	current := hours.Open
	for current.IsBefore(hours.Close) {
		end, err := current.AddMinutes(cfg.SlotDurationMinutes)
		if err != nil || end.IsAfter(hours.Close) {
			break
		}

		slot := domain.Slot{Start: current, End: end}
		if brk == nil || !brk.IsValid() || !slot.Overlaps(brk.Start, brk.End) {
			slots = append(slots, slot)
		}
		current = end
	}

	return slots
}

// Span возвращает слоты, которые займет бронирование [start, end).
// Диапазон должен начинаться и заканчиваться на границах слотов и не иметь разрывов
// (перерыв внутри диапазона или выход за часы работы - ErrRangeNotCovered).
func Span(slots []domain.Slot, start, end types.TimeString) ([]domain.Slot, error) {
	if !start.IsBefore(end) {
		return nil, ErrRangeNotCovered
	}

	span := make([]domain.Slot, 0)
	expected := start
	for _, slot := range slots {
		if slot.Start.IsBefore(start) {
			continue
		}
		if !slot.End.IsAfter(end) && slot.Start.Equal(expected) {
			span = append(span, slot)
			expected = slot.End
			continue
		}
		break
	}

	if len(span) == 0 || !expected.Equal(end) {
		return nil, ErrRangeNotCovered
	}
	return span, nil
}
