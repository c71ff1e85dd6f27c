package blockout

import "errors"

var (
	// ErrBlockoutNotFound возвращается, когда блокировка не найдена
	ErrBlockoutNotFound = errors.New("blockout.repository: blockout not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockout.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockout.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockout.repository: failed to scan row")
)
