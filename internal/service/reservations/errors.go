package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrAlreadyCancelled возвращается, когда бронирование уже не в статусе confirmed
	ErrAlreadyCancelled = errors.New("reservations: reservation is not confirmed")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другой квартире
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
