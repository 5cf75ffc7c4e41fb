package create_person

import (
	"context"

	"github.com/archportal/booking-service/internal/service/persons/models"
)

type PersonService interface {
	Create(ctx context.Context, req *models.PersonRequest) (*models.PersonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
