package icalfeed

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("icalfeed client: internal error")

	// ErrUnavailable возвращается, когда фид недоступен (сеть, таймаут, статус не 200)
	ErrUnavailable = errors.New("icalfeed client: feed unavailable")

	// ErrInvalidFeed возвращается, когда ответ не является iCalendar документом
	ErrInvalidFeed = errors.New("icalfeed client: invalid iCalendar data")
)
