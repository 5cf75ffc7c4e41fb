package bookingtoken

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен не найден
	ErrTokenNotFound = errors.New("bookingtoken.repository: token not found")

	// ErrTokenNotConsumable возвращается, когда токен не удалось погасить (использован, просрочен или отсутствует)
	ErrTokenNotConsumable = errors.New("bookingtoken.repository: token cannot be consumed")

	// ErrTokenExists возвращается при коллизии значения токена
	ErrTokenExists = errors.New("bookingtoken.repository: token already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingtoken.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingtoken.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingtoken.repository: failed to scan row")
)
