package banktransaction

import "errors"

var (
	// ErrTransactionNotFound возвращается, когда запись не найдена
	ErrTransactionNotFound = errors.New("banktransaction.repository: bank transaction not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("banktransaction.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("banktransaction.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("banktransaction.repository: failed to scan row")
)
