package get_schedule_config

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// HoursModel часы работы
type HoursModel struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// BreakModel перерыв
type BreakModel struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScheduleConfigResponse HTTP response model
type ScheduleConfigResponse struct {
	ID                  int64       `json:"id"`
	CourtID             *int64      `json:"courtId,omitempty"`
	IsDefault           bool        `json:"isDefault"`
	SlotDurationMinutes int         `json:"slotDurationMinutes"`
	Weekday             HoursModel  `json:"weekday"`
	Weekend             *HoursModel `json:"weekend,omitempty"`
	Break               *BreakModel `json:"break,omitempty"`
	WeekendBreak        *BreakModel `json:"weekendBreak,omitempty"`
	UpdatedAt           *time.Time  `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует конфигурацию в HTTP response
func FromDomainConfig(cfg *domain.ScheduleConfig) *ScheduleConfigResponse {
	resp := &ScheduleConfigResponse{
		ID:                  cfg.ID,
		CourtID:             cfg.CourtID,
		IsDefault:           cfg.IsDefault(),
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		Weekday:             HoursModel{Open: cfg.Weekday.Open.String(), Close: cfg.Weekday.Close.String()},
	}
	if cfg.Weekend != nil {
		resp.Weekend = &HoursModel{Open: cfg.Weekend.Open.String(), Close: cfg.Weekend.Close.String()}
	}
	if cfg.Break != nil {
		resp.Break = &BreakModel{Start: cfg.Break.Start.String(), End: cfg.Break.End.String()}
	}
	if cfg.WeekendBreak != nil {
		resp.WeekendBreak = &BreakModel{Start: cfg.WeekendBreak.Start.String(), End: cfg.WeekendBreak.End.String()}
	}
	if !cfg.UpdatedAt.IsZero() {
		updated := cfg.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// ToDomainHours парсит часы работы
func (h HoursModel) ToDomainHours() (domain.DayHours, error) {
	open, err := types.NewTimeStringFromString(h.Open)
	if err != nil {
		return domain.DayHours{}, err
	}
	closeAt, err := types.NewTimeStringFromString(h.Close)
	if err != nil {
		return domain.DayHours{}, err
	}
	return domain.DayHours{Open: open, Close: closeAt}, nil
}

// ToDomainBreak парсит перерыв
func (b BreakModel) ToDomainBreak() (domain.BreakWindow, error) {
	h, err := HoursModel{Open: b.Start, Close: b.End}.ToDomainHours()
	if err != nil {
		return domain.BreakWindow{}, err
	}
	return domain.BreakWindow{Start: h.Open, End: h.Close}, nil
}
