package book_appointment

import (
	"context"
	"time"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/internal/integrations/googlecalendar"
	"github.com/archportal/booking-service/internal/integrations/mailer"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetAdmin(ctx context.Context) (*domain.User, error)
}

// WorkingHoursResolver возвращает рабочие часы пользователя (или расписание по умолчанию)
type WorkingHoursResolver interface {
	Resolve(ctx context.Context, userID int64) domain.WeeklyHours
}

// TokenRepository интерфейс репозитория токенов записи
type TokenRepository interface {
	Consume(ctx context.Context, value string, now time.Time) (*domain.BookingToken, error)
	GetByToken(ctx context.Context, value string) (*domain.BookingToken, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
	SetCalendarEventID(ctx context.Context, id int64, eventID string) error
}

// AppointmentTypeRepository интерфейс репозитория типов встреч
type AppointmentTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
}

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Calendar, error)
}

// EventCreator создаёт событие во внешнем календаре
type EventCreator interface {
	CreateEvent(ctx context.Context, calendarID string, in googlecalendar.EventInput) (string, error)
}

// ConfirmationSender отправляет письмо-подтверждение
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, c mailer.Confirmation) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики записи
type Metrics interface {
	IncBookingCompleted()
	IncBookingRejected(reason string)
	IncSideEffectFailure(kind string)
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
