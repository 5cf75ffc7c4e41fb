package book_appointment

import "time"

// Request модель запроса на запись по ссылке
type Request struct {
	Token     string
	StartTime string // RFC3339
	EndTime   string // RFC3339
	Notes     *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64
	StartTime time.Time
	EndTime   time.Time
	Title     string
}
