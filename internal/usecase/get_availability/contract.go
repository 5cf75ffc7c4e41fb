package get_availability

import (
	"context"
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// WorkingHoursResolver возвращает рабочие часы пользователя (или расписание по умолчанию)
type WorkingHoursResolver interface {
	Resolve(ctx context.Context, userID int64) domain.WeeklyHours
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetAdmin(ctx context.Context) (*domain.User, error)
}

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Calendar, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// AppointmentTypeRepository интерфейс репозитория типов встреч
type AppointmentTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
}

// BusySource источник занятых интервалов внешнего календаря (Google, iCalendar)
type BusySource interface {
	FetchBusy(ctx context.Context, externalID string, from, to time.Time) ([]domain.BusyInterval, error)
}

// Metrics метрики генерации слотов
type Metrics interface {
	AddSlotsGenerated(n int)
	IncCalendarFallback(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
