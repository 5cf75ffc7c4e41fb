package get_working_hours

import (
	"context"

	"github.com/archportal/booking-service/internal/service/workinghours/models"
)

type WorkingHoursService interface {
	Get(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
