package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
)

// UseCase use case получения доступности корта на дату
type UseCase struct {
	courtRepo    CourtRepository
	schedule     ScheduleProvider
	availability AvailabilityResolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. timeProvider может быть nil.
func NewUseCase(
	courtRepo CourtRepository,
	schedule ScheduleProvider,
	availability AvailabilityResolver,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = realTimeProvider{}
	}
	return &UseCase{
		courtRepo:    courtRepo,
		schedule:     schedule,
		availability: availability,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает слоты корта на дату с занятостью, приоритетом, защитой и возможностью вытеснения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.CourtID <= 0 || req.Date.IsZero() {
		uc.logger.Warn("GetAvailability: invalid request %+v", req)
		return nil, fmt.Errorf("%w: court id and date are required", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailability: court=%d, date=%s", req.CourtID, date.Format(domain.DateFormat))

	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailability: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailability: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: get court: %v", ErrInternal, err)
	}

	schedule, err := uc.schedule.GetForCourt(ctx, req.CourtID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedule for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: get schedule: %v", ErrInternal, err)
	}

	slots, err := uc.availability.ForCourtDate(ctx, req.CourtID, date, schedule, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: resolve availability: %v", ErrInternal, err)
	}

	return &Response{
		Court:               court,
		Date:                date,
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		Slots:               slots,
	}, nil
}
