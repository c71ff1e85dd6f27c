package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	courtRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/court"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/calendar"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/priority"
)

// UseCase бронирование корта с вытеснением предварительных бронирований
type UseCase struct {
	reservationRepo  ReservationRepository
	courtRepo        CourtRepository
	notificationRepo NotificationRepository
	schedule         ScheduleProvider
	availability     AvailabilityResolver
	assigner         PriorityAssigner
	reconciler       Reconciler
	notifier         Notifier
	games            GameCanceller
	strategy         Strategy
	policy           domain.BookingPolicy
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// Deps зависимости use case
type Deps struct {
	ReservationRepo  ReservationRepository
	CourtRepo        CourtRepository
	NotificationRepo NotificationRepository
	Schedule         ScheduleProvider
	Availability     AvailabilityResolver
	Assigner         PriorityAssigner
	Reconciler       Reconciler
	Notifier         Notifier
	Games            GameCanceller
	Strategy         Strategy
	Policy           domain.BookingPolicy
	Metrics          Metrics
	TimeProvider     TimeProvider // nil - системное время
	Logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(d Deps) *UseCase {
	tp := d.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}
	m := d.Metrics
	if m == nil {
		m = noopMetrics{}
	}
	return &UseCase{
		reservationRepo:  d.ReservationRepo,
		courtRepo:        d.CourtRepo,
		notificationRepo: d.NotificationRepo,
		schedule:         d.Schedule,
		availability:     d.Availability,
		assigner:         d.Assigner,
		reconciler:       d.Reconciler,
		notifier:         d.Notifier,
		games:            d.Games,
		strategy:         d.Strategy,
		policy:           d.Policy,
		metrics:          m,
		timeProvider:     tp,
		logger:           d.Logger,
	}
}

// Execute выполняет бронирование.
// Предусловия проверяются по порядку: квартира, минимальное и максимальное время до начала,
// затем внутри стратегии - дубль у квартиры, конфликты слотов, квота и вытеснение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.observe(resp, err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: apartment=%s, user=%d, court=%d, date=%s, %s-%s, force=%t",
		req.ApartmentID, req.UserID, req.CourtID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.ForceDisplacement)

	now := uc.timeProvider.Now()
	loc := uc.policy.Loc()

	// 2. Окно предварительной записи
	if err := validateAdvance(req.StartTime.On(req.Date, loc), now, uc.policy); err != nil {
		uc.logger.Warn("CreateBooking: advance window check failed: %v", err)
		return nil, err
	}

	// 3. Корт и расписание
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: get court: %v", ErrInternal, err)
	}

	schedule, err := uc.schedule.GetForCourt(ctx, req.CourtID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule for court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: get schedule: %v", ErrInternal, err)
	}

	// 4. Конвейер в выбранной стратегии
	var resp *Response
	err = uc.strategy.BookWithDisplacement(ctx, func(ctx context.Context) error {
		var err error
		resp, err = uc.book(ctx, req, court, schedule, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 5. Побочные эффекты после фиксации: их ошибки не влияют на результат
	uc.afterCommit(ctx, req.ApartmentID, resp.Displaced, now)

	uc.logger.Info("CreateBooking: reservation id=%d created, priority=%s, displaced=%d, strategy=%s",
		resp.Reservation.ID, resp.Reservation.Priority, len(resp.Displaced), uc.strategy.Name())
	return resp, nil
}

func (uc *UseCase) book(
	ctx context.Context,
	req *Request,
	court *domain.Court,
	schedule *domain.ScheduleConfig,
	now time.Time,
) (*Response, error) {
	// 4.1. У квартиры уже есть бронирование с тем же началом
	if err := uc.checkDuplicate(ctx, req); err != nil {
		return nil, err
	}

	// 4.2. Слоты, которые займет бронирование
	slots, err := uc.availability.ForCourtDate(ctx, req.CourtID, req.Date, schedule, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve availability: %v", err)
		return nil, fmt.Errorf("%w: resolve availability: %v", ErrInternal, err)
	}
	requested, err := span(slots, req)
	if err != nil {
		uc.logger.Warn("CreateBooking: range %s-%s does not match the schedule: %v", req.StartTime, req.EndTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
	}

	// 4.3. Конфликты по слотам и кандидаты на вытеснение (каждое бронирование один раз)
	candidates, err := collectCandidates(requested, req.ApartmentID)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot conflict: %v", err)
		return nil, err
	}

	// 4.4. Квота квартиры проверяется до любых изменений, в том числе при вытеснении
	assigned, err := uc.assigner.Assign(ctx, req.ApartmentID, now)
	if err != nil {
		if errors.Is(err, priority.ErrApartmentAtCapacity) {
			uc.logger.Warn("CreateBooking: apartment=%s is at capacity", req.ApartmentID)
			return nil, ErrApartmentAtCapacity
		}
		uc.logger.Error("CreateBooking: failed to assign priority: %v", err)
		return nil, fmt.Errorf("%w: assign priority: %v", ErrInternal, err)
	}

	// 4.5. Без подтверждения вытеснение не выполняется
	if len(candidates) > 0 && !req.ForceDisplacement {
		uc.logger.Info("CreateBooking: confirmation required, %d reservation(s) would be displaced", len(candidates))
		return nil, &ConfirmationRequiredError{Candidate: candidates[0], Candidates: len(candidates)}
	}

	// 4.6. Вытеснение
	displaced := make([]*domain.Reservation, 0, len(candidates))
	for _, c := range candidates {
		if err := uc.displace(ctx, c, req.ApartmentID, now); err != nil {
			return nil, err
		}
		displaced = append(displaced, c)
	}

	// 4.7. Повторная проверка дубля перед созданием
	if err := uc.checkDuplicate(ctx, req); err != nil {
		return nil, err
	}

	// 4.8. Вытесняющее бронирование всегда гарантированное
	prio := assigned
	if len(displaced) > 0 {
		prio = domain.PriorityGuaranteed
	}

	reservation := &domain.Reservation{
		CourtID:         court.ID,
		CourtName:       court.Name,
		ApartmentID:     req.ApartmentID,
		UserID:          req.UserID,
		UserName:        req.UserName,
		Date:            domain.DateOnly(req.Date),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: req.StartTime.MinutesUntil(req.EndTime),
		Status:          domain.StatusConfirmed,
		Priority:        prio,
		Players:         req.Players,
	}

	created, err := uc.reservationRepo.Create(ctx, reservation)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrDuplicateForApartment):
			uc.logger.Warn("CreateBooking: duplicate slot for apartment=%s on insert", req.ApartmentID)
			return nil, ErrDuplicateSlotForApartment
		case errors.Is(err, reservationRepo.ErrCourtOverlap):
			uc.logger.Warn("CreateBooking: court id=%d range taken concurrently", req.CourtID)
			return nil, ErrConcurrentBooking
		default:
			uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
			return nil, fmt.Errorf("%w: create reservation: %w", ErrInternal, err)
		}
	}

	return &Response{Reservation: created, Displaced: displaced}, nil
}

func (uc *UseCase) checkDuplicate(ctx context.Context, req *Request) error {
	exists, err := uc.reservationRepo.ExistsForApartmentAt(ctx, req.ApartmentID, req.Date, req.StartTime)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check duplicate: %v", err)
		return fmt.Errorf("%w: check duplicate: %w", ErrInternal, err)
	}
	if exists {
		uc.logger.Warn("CreateBooking: apartment=%s already holds %s %s",
			req.ApartmentID, req.Date.Format(domain.DateFormat), req.StartTime)
		return ErrDuplicateSlotForApartment
	}
	return nil
}

// displace отменяет бронирование-кандидат и сохраняет запись об уведомлении.
// Отмена, не затронувшая ни одной строки, - проигранная гонка.
func (uc *UseCase) displace(ctx context.Context, c *domain.Reservation, displacingApartment string, now time.Time) error {
	ok, err := uc.reservationRepo.CancelIfConfirmed(ctx, c.ID, domain.CancelReasonDisplaced, now)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to cancel reservation id=%d for displacement: %v", c.ID, err)
		return fmt.Errorf("%w: cancel for displacement: %w", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("CreateBooking: reservation id=%d was no longer confirmed, displacement race lost", c.ID)
		return fmt.Errorf("%w: reservation id=%d", ErrDisplacementRaceLost, c.ID)
	}

	c.Status = domain.StatusCancelled
	if err := uc.notificationRepo.Create(ctx, domain.NewDisplacementNotification(c, displacingApartment)); err != nil {
		uc.logger.Error("CreateBooking: failed to store displacement notification for reservation id=%d: %v", c.ID, err)
		return fmt.Errorf("%w: store notification: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: reservation id=%d of apartment=%s displaced by apartment=%s",
		c.ID, c.ApartmentID, displacingApartment)
	return nil
}

// afterCommit уведомляет вытесненные квартиры, отменяет привязанные игры и
// записывает нормализованные приоритеты затронутых квартир
func (uc *UseCase) afterCommit(ctx context.Context, apartmentID string, displaced []*domain.Reservation, now time.Time) {
	apartments := []string{apartmentID}
	seen := map[string]bool{apartmentID: true}

	for _, d := range displaced {
		if err := uc.notifier.NotifyDisplacement(ctx, domain.NewDisplacementNotification(d, apartmentID)); err != nil {
			uc.logger.Error("CreateBooking: failed to notify apartment=%s about reservation id=%d: %v",
				d.ApartmentID, d.ID, err)
		}
		if err := uc.games.CancelForReservation(ctx, d.ID, domain.CancelReasonDisplaced); err != nil {
			uc.logger.Error("CreateBooking: failed to cancel linked game for reservation id=%d: %v", d.ID, err)
		}
		if !seen[d.ApartmentID] {
			seen[d.ApartmentID] = true
			apartments = append(apartments, d.ApartmentID)
		}
	}

	for _, a := range apartments {
		if _, err := uc.reconciler.Reconcile(ctx, a, now); err != nil {
			uc.logger.Error("CreateBooking: failed to reconcile apartment=%s: %v", a, err)
		}
	}
}

func (uc *UseCase) observe(resp *Response, err error) {
	switch {
	case err == nil && len(resp.Displaced) > 0:
		uc.metrics.BookingResult(resultDisplaced)
		uc.metrics.Displaced(len(resp.Displaced))
	case err == nil:
		uc.metrics.BookingResult(resultCreated)
	case errors.Is(err, ErrConfirmationRequired):
		uc.metrics.BookingResult(resultConfirmationRequired)
	case errors.Is(err, ErrDisplacementRaceLost), errors.Is(err, ErrConcurrentBooking):
		uc.metrics.BookingResult(resultRaceLost)
		uc.metrics.RaceLost()
	case errors.Is(err, ErrInternal):
		uc.metrics.BookingResult(resultError)
	default:
		uc.metrics.BookingResult(resultRejected)
	}
}

// span выбирает аннотированные слоты диапазона [start, end)
func span(slots []domain.SlotAvailability, req *Request) ([]domain.SlotAvailability, error) {
	plain := make([]domain.Slot, len(slots))
	for i, s := range slots {
		plain[i] = s.Slot
	}

	covered, err := calendar.Span(plain, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	byStart := make(map[int]domain.SlotAvailability, len(slots))
	for _, s := range slots {
		byStart[s.Start.Minutes()] = s
	}
	out := make([]domain.SlotAvailability, 0, len(covered))
	for _, c := range covered {
		out = append(out, byStart[c.Start.Minutes()])
	}
	return out, nil
}

// collectCandidates проверяет слоты диапазона и собирает чужие вытесняемые бронирования.
// Бронирование, занимающее несколько слотов, попадает в результат один раз.
func collectCandidates(slots []domain.SlotAvailability, apartmentID string) ([]*domain.Reservation, error) {
	seen := make(map[int64]bool)
	candidates := make([]*domain.Reservation, 0)

	for _, s := range slots {
		switch {
		case s.Blocked:
			return nil, fmt.Errorf("%w: %s-%s", ErrSlotBlocked, s.Start, s.End)
		case s.Reservation == nil:
			continue
		case !s.Displaceable:
			return nil, fmt.Errorf("%w: %s-%s", ErrSlotUnavailable, s.Start, s.End)
		case s.Reservation.ApartmentID == apartmentID:
			return nil, fmt.Errorf("%w: overlaps reservation id=%d", ErrDuplicateSlotForApartment, s.Reservation.ID)
		}

		if !seen[s.Reservation.ID] {
			seen[s.Reservation.ID] = true
			candidates = append(candidates, s.Reservation)
		}
	}
	return candidates, nil
}

type noopMetrics struct{}

func (noopMetrics) BookingResult(string) {}
func (noopMetrics) Displaced(int)        {}
func (noopMetrics) RaceLost()            {}
