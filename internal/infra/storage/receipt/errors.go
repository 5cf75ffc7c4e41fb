package receipt

import "errors"

var (
	// ErrReceiptNotFound возвращается, когда запись не найдена
	ErrReceiptNotFound = errors.New("receipt.repository: receipt not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("receipt.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("receipt.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("receipt.repository: failed to scan row")
)
