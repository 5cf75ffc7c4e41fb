package get_person

import (
	"context"

	"github.com/archportal/booking-service/internal/service/persons/models"
)

type PersonService interface {
	GetByID(ctx context.Context, id int64) (*models.PersonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
