package get_booking_link

import "time"

// Request модель запроса
type Request struct {
	Token string
}

// Response публичные данные ссылки для страницы записи
type Response struct {
	ContactName       string
	AppointmentTypeID *int64
	AppointmentType   *string
	DurationMinutes   int
	ExpiresAt         time.Time
}
