package priority

import "errors"

var (
	// ErrApartmentAtCapacity возвращается, когда у квартиры уже максимум активных бронирований
	ErrApartmentAtCapacity = errors.New("priority: apartment already holds the maximum number of active reservations")

	// ErrInternal возвращается при ошибках чтения или записи хранилища
	ErrInternal = errors.New("priority: internal error")
)
