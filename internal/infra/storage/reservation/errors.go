package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrDuplicateForApartment возвращается при нарушении уникальности (квартира, дата, начало)
	ErrDuplicateForApartment = errors.New("reservation.repository: apartment already holds this slot")

	// ErrCourtOverlap возвращается, когда подтвержденное бронирование корта пересекается с другим
	ErrCourtOverlap = errors.New("reservation.repository: court time range already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
