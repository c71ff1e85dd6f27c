// Package blockouts administers time ranges excluded from booking.
package blockouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	blockoutRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/blockout"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// CreateRequest запрос на создание блокировки
type CreateRequest struct {
	CourtID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
	CreatedBy int64
}

// Service сервис административных блокировок
type Service struct {
	blockoutRepo    BlockoutRepository
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockoutRepo BlockoutRepository,
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		blockoutRepo:    blockoutRepo,
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create создает блокировку. Если диапазон пересекается с подтвержденным бронированием,
// блокировка не создается: сначала нужно отменить бронирование.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.Blockout, error) {
	if err := validate(req); err != nil {
		s.logger.Warn("CreateBlockout: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkCourt(ctx, "CreateBlockout", req.CourtID); err != nil {
		return nil, err
	}

	blockout := &domain.Blockout{
		CourtID:   req.CourtID,
		Date:      domain.DateOnly(req.Date),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    strings.TrimSpace(req.Reason),
		CreatedBy: req.CreatedBy,
	}

	// Проверка и вставка в одной сериализуемой транзакции с бронированием
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		reservations, err := s.reservationRepo.GetByCourtAndDate(ctx, blockout.CourtID, blockout.Date)
		if err != nil {
			return fmt.Errorf("%w: get reservations: %v", ErrInternal, err)
		}
		for _, r := range reservations {
			if r.IsConfirmed() && blockout.Overlaps(r.StartTime, r.EndTime) {
				return fmt.Errorf("%w: reservation id=%d %s-%s", ErrOverlapsReservation, r.ID, r.StartTime, r.EndTime)
			}
		}

		if _, err := s.blockoutRepo.Create(ctx, blockout); err != nil {
			return fmt.Errorf("%w: create blockout: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOverlapsReservation) {
			s.logger.Warn("CreateBlockout: %v", err)
			return nil, err
		}
		s.logger.Error("CreateBlockout: failed for court=%d: %v", req.CourtID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockout: blockout id=%d created for court=%d on %s %s-%s",
		blockout.ID, blockout.CourtID, blockout.Date.Format(domain.DateFormat), blockout.StartTime, blockout.EndTime)
	return blockout, nil
}

// List возвращает блокировки корта на дату
func (s *Service) List(ctx context.Context, courtID int64, date time.Time) ([]*domain.Blockout, error) {
	if courtID <= 0 || date.IsZero() {
		return nil, fmt.Errorf("%w: court id and date are required", ErrInvalidInput)
	}
	if err := s.checkCourt(ctx, "ListBlockouts", courtID); err != nil {
		return nil, err
	}

	list, err := s.blockoutRepo.GetByCourtAndDate(ctx, courtID, domain.DateOnly(date))
	if err != nil {
		s.logger.Error("ListBlockouts: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: list blockouts: %v", ErrInternal, err)
	}
	return list, nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: blockout id must be positive", ErrInvalidInput)
	}

	if err := s.blockoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockoutRepo.ErrBlockoutNotFound) {
			s.logger.Warn("DeleteBlockout: blockout id=%d not found", id)
			return ErrBlockoutNotFound
		}
		s.logger.Error("DeleteBlockout: repository error for blockout id=%d: %v", id, err)
		return fmt.Errorf("%w: delete blockout: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockout: blockout id=%d deleted", id)
	return nil
}

func (s *Service) checkCourt(ctx context.Context, op string, courtID int64) error {
	if _, err := s.courtRepo.GetByID(ctx, courtID); err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			s.logger.Warn("%s: court id=%d not found", op, courtID)
			return ErrCourtNotFound
		}
		s.logger.Error("%s: failed to get court id=%d: %v", op, courtID, err)
		return fmt.Errorf("%w: get court: %v", ErrInternal, err)
	}
	return nil
}

func validate(req *CreateRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: court id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.Validate() != nil || req.EndTime.Validate() != nil || !req.EndTime.IsAfter(req.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidInput)
	}
	return nil
}
