package update_appointment_type

import (
	"context"

	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
)

type AppointmentTypeService interface {
	Update(ctx context.Context, id int64, req *models.SaveAppointmentTypeRequest) (*models.AppointmentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
