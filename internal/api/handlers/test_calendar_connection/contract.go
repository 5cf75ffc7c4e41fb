package test_calendar_connection

import (
	"context"

	"github.com/archportal/booking-service/internal/service/calendars/models"
)

type CalendarService interface {
	TestConnection(ctx context.Context, id int64, userID int64) (*models.ConnectionStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
