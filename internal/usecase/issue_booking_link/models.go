package issue_booking_link

import "time"

// Options параметры выдачи ссылок
type Options struct {
	DefaultTTLHours int
	// PublicURL адрес страницы записи, к нему добавляется ?token=
	PublicURL string
}

// Request модель запроса на выдачу ссылки
type Request struct {
	CreatedBy         int64
	ContactName       string
	ContactEmail      string
	AppointmentTypeID *int64
	ExpiresInHours    *int
	SendEmail         bool
}

// Response модель ответа с выданной ссылкой
type Response struct {
	Token     string
	URL       string
	ExpiresAt time.Time
	EmailSent bool
}
