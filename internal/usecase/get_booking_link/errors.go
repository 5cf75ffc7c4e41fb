package get_booking_link

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен неизвестен
	ErrTokenNotFound = errors.New("get_booking_link: booking link not found")

	// ErrTokenUsed возвращается, когда по ссылке уже записались
	ErrTokenUsed = errors.New("get_booking_link: booking link has already been used")

	// ErrTokenExpired возвращается, когда срок действия ссылки истёк
	ErrTokenExpired = errors.New("get_booking_link: booking link has expired")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_booking_link: internal error")
)
