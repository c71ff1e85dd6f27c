package blockouts

import "errors"

var (
	// ErrBlockoutNotFound возвращается, когда блокировка не найдена
	ErrBlockoutNotFound = errors.New("blockouts: blockout not found")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("blockouts: court not found")

	// ErrOverlapsReservation возвращается, когда блокировка пересекается с подтвержденным бронированием
	ErrOverlapsReservation = errors.New("blockouts: overlaps a confirmed reservation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blockouts: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blockouts: internal error")
)
