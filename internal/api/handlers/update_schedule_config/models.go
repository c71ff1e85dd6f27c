package update_schedule_config

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_schedule_config"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// UpdateScheduleConfigRequest HTTP request model. Без courtId - глобальная конфигурация.
type UpdateScheduleConfigRequest struct {
	CourtID             *int64                          `json:"courtId,omitempty"`
	SlotDurationMinutes int                             `json:"slotDurationMinutes"`
	Weekday             get_schedule_config.HoursModel  `json:"weekday"`
	Weekend             *get_schedule_config.HoursModel `json:"weekend,omitempty"`
	Break               *get_schedule_config.BreakModel `json:"break,omitempty"`
	WeekendBreak        *get_schedule_config.BreakModel `json:"weekendBreak,omitempty"`
}

// ToDomainConfig конвертирует HTTP запрос в доменную конфигурацию
func (r *UpdateScheduleConfigRequest) ToDomainConfig() (*domain.ScheduleConfig, error) {
	weekday, err := r.Weekday.ToDomainHours()
	if err != nil {
		return nil, err
	}
	cfg := &domain.ScheduleConfig{
		CourtID:             r.CourtID,
		SlotDurationMinutes: r.SlotDurationMinutes,
		Weekday:             weekday,
	}

	if r.Weekend != nil {
		weekend, err := r.Weekend.ToDomainHours()
		if err != nil {
			return nil, err
		}
		cfg.Weekend = &weekend
	}
	if r.Break != nil {
		brk, err := r.Break.ToDomainBreak()
		if err != nil {
			return nil, err
		}
		cfg.Break = &brk
	}
	if r.WeekendBreak != nil {
		brk, err := r.WeekendBreak.ToDomainBreak()
		if err != nil {
			return nil, err
		}
		cfg.WeekendBreak = &brk
	}
	return cfg, nil
}
