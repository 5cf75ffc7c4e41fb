package issue_booking_link

import (
	"context"
	"time"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/internal/integrations/mailer"
)

// TokenRepository интерфейс репозитория токенов записи
type TokenRepository interface {
	Create(ctx context.Context, token *domain.BookingToken) (*domain.BookingToken, error)
}

// AppointmentTypeRepository интерфейс репозитория типов встреч
type AppointmentTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
}

// InvitationSender отправляет письмо со ссылкой на запись
type InvitationSender interface {
	SendInvitation(ctx context.Context, inv mailer.Invitation) error
}

// TokenGenerator генерирует значение токена
type TokenGenerator func() string

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
