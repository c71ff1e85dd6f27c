// Package schedule provides the weekday-class opening configuration of courts.
package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Service отдает конфигурацию расписания с учетом иерархии:
// корт > глобальная > значения по умолчанию из config.toml
type Service struct {
	repo     Repository
	defaults domain.ScheduleConfig
	logger   Logger
}

// NewService создает сервис конфигурации расписания
func NewService(repo Repository, defaults *domain.ScheduleConfig, logger Logger) *Service {
	return &Service{repo: repo, defaults: *defaults, logger: logger}
}

// GetForCourt возвращает действующую конфигурацию для корта. courtID = 0 - глобальная.
func (s *Service) GetForCourt(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error) {
	cfg, err := s.repo.GetWithHierarchy(ctx, courtID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		s.logger.Error("GetScheduleConfig: failed to get config for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: get config: %v", ErrInternal, err)
	}

	defaults := s.defaults
	return &defaults, nil
}

// Update проверяет и сохраняет конфигурацию для корта (CourtID задан) или глобальную
func (s *Service) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	if err := Validate(cfg); err != nil {
		s.logger.Warn("UpdateScheduleConfig: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateScheduleConfig: failed to save config: %v", err)
		return nil, fmt.Errorf("%w: save config: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateScheduleConfig: config id=%d saved (global=%t)", saved.ID, saved.IsGlobal())
	return saved, nil
}

// Validate проверяет, что из конфигурации можно сгенерировать слоты
func Validate(cfg *domain.ScheduleConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: empty config", ErrInvalidConfig)
	}
	if cfg.SlotDurationMinutes <= 0 || types.MinutesPerDay%cfg.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: slot duration %d must divide a day", ErrInvalidConfig, cfg.SlotDurationMinutes)
	}
	if !cfg.Weekday.IsValid() {
		return fmt.Errorf("%w: weekday close must be after open", ErrInvalidConfig)
	}
	if cfg.Weekend != nil && !cfg.Weekend.IsValid() {
		return fmt.Errorf("%w: weekend close must be after open", ErrInvalidConfig)
	}
	if cfg.Break != nil && !cfg.Break.IsValid() {
		return fmt.Errorf("%w: break end must be after start", ErrInvalidConfig)
	}
	if cfg.WeekendBreak != nil && !cfg.WeekendBreak.IsValid() {
		return fmt.Errorf("%w: weekend break end must be after start", ErrInvalidConfig)
	}
	return nil
}
