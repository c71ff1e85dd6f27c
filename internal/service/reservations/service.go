// Package reservations provides cancellation and read access to reservations.
package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/priority"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/reservations/models"
)

// DefaultNotificationsLimit сколько последних уведомлений отдавать квартире
const DefaultNotificationsLimit = 50

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo  ReservationRepository
	notificationRepo NotificationRepository
	gameCanceller    GameCanceller
	reconciler       Reconciler
	metrics          Metrics
	timeProvider     TimeProvider
	loc              *time.Location
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	notificationRepo NotificationRepository,
	gameCanceller GameCanceller,
	reconciler Reconciler,
	metrics Metrics,
	timeProvider TimeProvider,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		reservationRepo:  reservationRepo,
		notificationRepo: notificationRepo,
		gameCanceller:    gameCanceller,
		reconciler:       reconciler,
		metrics:          metrics,
		timeProvider:     timeProvider,
		loc:              loc,
		logger:           logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может любой житель квартиры или его автор
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, actor.UserID)

	reservation, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canAccess(reservation, actor) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation, s.timeProvider.Now(), s.loc), nil
}

// GetApartmentActive возвращает активные бронирования квартиры с нормализованными приоритетами
// и временем конвертации. Ничего не записывает.
func (s *Service) GetApartmentActive(ctx context.Context, apartmentID string, actor models.Actor) (*models.ReservationListResponse, error) {
	if apartmentID == "" {
		return nil, fmt.Errorf("%w: apartment is required", ErrInvalidInput)
	}
	if actor.ApartmentID != apartmentID {
		s.logger.Warn("GetApartmentActive: user=%d of apartment=%q denied for apartment=%q",
			actor.UserID, actor.ApartmentID, apartmentID)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	active, err := s.reservationRepo.GetActiveByApartment(ctx, apartmentID, now.In(s.loc))
	if err != nil {
		s.logger.Error("GetApartmentActive: repository error for apartment=%q: %v", apartmentID, err)
		return nil, fmt.Errorf("%w: GetApartmentActive - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(priority.Normalize(active, s.loc), now, s.loc), nil
}

// GetNotifications возвращает последние уведомления о вытеснении для квартиры
func (s *Service) GetNotifications(ctx context.Context, apartmentID string, actor models.Actor) (*models.NotificationListResponse, error) {
	if apartmentID == "" {
		return nil, fmt.Errorf("%w: apartment is required", ErrInvalidInput)
	}
	if actor.ApartmentID != apartmentID {
		s.logger.Warn("GetNotifications: user=%d denied for apartment=%q", actor.UserID, apartmentID)
		return nil, ErrAccessDenied
	}

	list, err := s.notificationRepo.GetByApartment(ctx, apartmentID, DefaultNotificationsLimit)
	if err != nil {
		s.logger.Error("GetNotifications: repository error for apartment=%q: %v", apartmentID, err)
		return nil, fmt.Errorf("%w: GetNotifications - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainNotificationList(list), nil
}

// Cancel отменяет бронирование
// Отменить может любой житель квартиры-владельца; если квартира актора неизвестна -
// только автор бронирования. Минимального срока до начала нет.
func (s *Service) Cancel(ctx context.Context, id int64, actor models.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d apartment=%q", id, actor.UserID, actor.ApartmentID)

	reservation, err := s.get(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	// права проверяются до статуса, чтобы чужой житель не узнал состояние бронирования
	if !canAccess(reservation, actor) {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	if !reservation.IsConfirmed() {
		s.logger.Warn("Cancel: reservation id=%d is %s", id, reservation.Status)
		return nil, ErrAlreadyCancelled
	}

	now := s.timeProvider.Now()
	cancelled, err := s.reservationRepo.CancelIfConfirmed(ctx, id, domain.CancelReasonUser, now)
	if err != nil {
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}
	if !cancelled {
		// отменено параллельно (пользователем или вытеснением)
		s.logger.Warn("Cancel: reservation id=%d was cancelled concurrently", id)
		return nil, ErrAlreadyCancelled
	}

	if s.metrics != nil {
		s.metrics.Cancelled()
	}

	s.afterCancel(ctx, reservation, now)

	reason := domain.CancelReasonUser
	reservation.Status = domain.StatusCancelled
	reservation.CancellationReason = &reason
	reservation.CancelledAt = &now

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return models.FromDomainReservation(reservation, now, s.loc), nil
}

// afterCancel побочные эффекты отмены. Ошибки только логируются.
func (s *Service) afterCancel(ctx context.Context, reservation *domain.Reservation, now time.Time) {
	if s.gameCanceller != nil {
		if err := s.gameCanceller.CancelForReservation(ctx, reservation.ID, domain.CancelReasonUser); err != nil {
			s.logger.Error("Cancel: failed to cancel linked game for reservation id=%d: %v", reservation.ID, err)
		}
	}

	if s.reconciler != nil {
		if _, err := s.reconciler.Reconcile(ctx, reservation.ApartmentID, now); err != nil {
			s.logger.Error("Cancel: failed to reconcile apartment=%q: %v", reservation.ApartmentID, err)
		}
	}
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return reservation, nil
}

// canAccess проверяет квартиру актора, а если она неизвестна - автора бронирования
func canAccess(r *domain.Reservation, actor models.Actor) bool {
	if actor.ApartmentID != "" {
		return r.ApartmentID == actor.ApartmentID
	}
	return actor.UserID != 0 && r.UserID == actor.UserID
}
