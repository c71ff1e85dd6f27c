package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrMissingApartment возвращается, когда у запроса не указана квартира
	ErrMissingApartment = errors.New("create_booking: apartment is required")

	// ErrTooSoon возвращается, когда до начала меньше минимального времени предварительной записи
	ErrTooSoon = errors.New("create_booking: start is too soon")

	// ErrTooFarAhead возвращается, когда до начала больше максимального горизонта записи
	ErrTooFarAhead = errors.New("create_booking: start is too far ahead")

	// ErrInvalidTimeRange возвращается, когда диапазон пустой или не совпадает с границами слотов
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrSlotBlocked возвращается, когда один из слотов закрыт администратором
	ErrSlotBlocked = errors.New("create_booking: slot is blocked")

	// ErrSlotUnavailable возвращается, когда слот занят бронированием, которое нельзя вытеснить
	ErrSlotUnavailable = errors.New("create_booking: slot is unavailable")

	// ErrDuplicateSlotForApartment возвращается, когда у квартиры уже есть бронирование с этим началом
	// или запрошенный диапазон пересекается с бронированием той же квартиры
	ErrDuplicateSlotForApartment = errors.New("create_booking: apartment already holds this slot")

	// ErrApartmentAtCapacity возвращается, когда у квартиры уже максимум активных бронирований
	ErrApartmentAtCapacity = errors.New("create_booking: apartment is at capacity")

	// ErrConfirmationRequired возвращается, когда бронирование вытеснит чужое предварительное
	// бронирование, а флаг forceDisplacement не передан. Не ошибка, а шаг двухфазного протокола.
	ErrConfirmationRequired = errors.New("create_booking: displacement requires confirmation")

	// ErrDisplacementRaceLost возвращается, когда вытесняемое бронирование уже отменено или занято другим запросом
	ErrDisplacementRaceLost = errors.New("create_booking: displacement race lost")

	// ErrConcurrentBooking возвращается, когда транзакция проиграла конкурентному бронированию
	ErrConcurrentBooking = errors.New("create_booking: concurrent booking detected")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ConfirmationRequiredError несет первое бронирование, которое будет вытеснено
type ConfirmationRequiredError struct {
	Candidate  *domain.Reservation
	Candidates int
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%v: reservation id=%d of apartment %s (%d candidate(s))",
		ErrConfirmationRequired, e.Candidate.ID, e.Candidate.ApartmentID, e.Candidates)
}

func (e *ConfirmationRequiredError) Unwrap() error {
	return ErrConfirmationRequired
}
