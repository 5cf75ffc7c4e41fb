package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных датах или полях запроса
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrTokenNotFound возвращается, когда токен неизвестен
	ErrTokenNotFound = errors.New("book_appointment: booking link not found")

	// ErrTokenUsed возвращается, когда по ссылке уже записались
	ErrTokenUsed = errors.New("book_appointment: booking link has already been used")

	// ErrTokenExpired возвращается, когда срок действия ссылки истёк
	ErrTokenExpired = errors.New("book_appointment: booking link has expired")

	// ErrSlotUnavailable возвращается, когда окно пересекается с другой записью
	ErrSlotUnavailable = errors.New("book_appointment: time slot is no longer available")

	// ErrAdminUnavailable возвращается, когда в системе нет администратора
	ErrAdminUnavailable = errors.New("book_appointment: admin user unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
