package workinghours

import (
	"context"

	"github.com/archportal/booking-service/internal/domain"
)

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.WeeklyHours, error)
	Upsert(ctx context.Context, userID int64, hours domain.WeeklyHours) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
