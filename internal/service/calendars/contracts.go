package calendars

import (
	"context"
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, c *domain.Calendar) (*domain.Calendar, error)
	GetByID(ctx context.Context, id int64) (*domain.Calendar, error)
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Calendar, error)
	ClearPrimary(ctx context.Context, userID int64) error
	Delete(ctx context.Context, id int64) error
}

// Pinger проверяет доступность календаря у провайдера
type Pinger interface {
	Ping(ctx context.Context, externalID string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// StatusCache кэш результатов проверки подключения
type StatusCache interface {
	Get(key int64) (domain.CalendarConnectionStatus, bool)
	Set(key int64, value domain.CalendarConnectionStatus)
	Delete(key int64)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
