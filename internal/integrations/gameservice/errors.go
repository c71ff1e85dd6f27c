package gameservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("gameservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("gameservice client: invalid response")

	// ErrUnauthorized возвращается, когда сервис отклонил токен
	ErrUnauthorized = errors.New("gameservice client: unauthorized")
)
