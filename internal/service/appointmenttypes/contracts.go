package appointmenttypes

import (
	"context"

	"github.com/archportal/booking-service/internal/domain"
)

// AppointmentTypeRepository интерфейс репозитория типов встреч
type AppointmentTypeRepository interface {
	Create(ctx context.Context, t *domain.AppointmentType) (*domain.AppointmentType, error)
	Update(ctx context.Context, t *domain.AppointmentType) error
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.AppointmentType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
