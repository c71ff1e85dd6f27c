package schedule

import "errors"

var (
	// ErrInvalidConfig возвращается при недопустимых часах работы, перерыве или шаге слота
	ErrInvalidConfig = errors.New("schedule: invalid schedule configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
