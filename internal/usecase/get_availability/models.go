package get_availability

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// Options параметры генерации слотов
type Options struct {
	StepMinutes            int
	DefaultDurationMinutes int
	MaxRangeDays           int
	// DemoFallback показывать демо-занятость, если календарь не подключён
	DemoFallback bool
	Location     *time.Location
}

// Request модель запроса доступности
type Request struct {
	StartDate         string // YYYY-MM-DD
	EndDate           string // YYYY-MM-DD, включительно
	DurationMinutes   int    // 0 - взять из типа встречи или по умолчанию
	AppointmentTypeID *int64
}

// Response модель ответа со слотами
type Response struct {
	Slots   []domain.CandidateSlot
	Warning *string
}
