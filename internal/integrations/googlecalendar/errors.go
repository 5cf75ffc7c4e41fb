package googlecalendar

import "errors"

var (
	// ErrUnavailable возвращается, когда Google Calendar API недоступен или вернул ошибку
	ErrUnavailable = errors.New("googlecalendar client: calendar unavailable")

	// ErrCalendarNotFound возвращается, когда календарь не найден или нет доступа
	ErrCalendarNotFound = errors.New("googlecalendar client: calendar not found")

	// ErrInvalidResponse возвращается при некорректном ответе API
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")
)
