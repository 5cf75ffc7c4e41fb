package create_appointment_type

import (
	"context"

	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
)

type AppointmentTypeService interface {
	Create(ctx context.Context, req *models.SaveAppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
