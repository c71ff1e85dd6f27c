package config

import "errors"

var (
	// ErrReadConfig возвращается, когда файл конфигурации или окружение не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read configuration")

	// ErrInvalidConfig возвращается, когда значения конфигурации недопустимы
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
