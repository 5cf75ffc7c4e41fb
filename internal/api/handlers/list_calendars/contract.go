package list_calendars

import (
	"context"

	"github.com/archportal/booking-service/internal/service/calendars/models"
)

type CalendarService interface {
	List(ctx context.Context, userID int64) ([]*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
