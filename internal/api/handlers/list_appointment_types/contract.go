package list_appointment_types

import (
	"context"

	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
)

type AppointmentTypeService interface {
	List(ctx context.Context, onlyActive bool) ([]*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
