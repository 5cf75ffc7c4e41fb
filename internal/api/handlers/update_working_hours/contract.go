package update_working_hours

import (
	"context"

	"github.com/archportal/booking-service/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Update(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
