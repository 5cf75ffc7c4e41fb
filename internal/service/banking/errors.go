package banking

import "errors"

var (
	// ErrReceiptNotFound возвращается, когда чек не найден
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrInvalidStatement возвращается, когда выписку невозможно прочитать
	ErrInvalidStatement = errors.New("invalid bank statement")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
