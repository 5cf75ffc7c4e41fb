package update_person

import (
	"context"

	updatePerson "github.com/archportal/booking-service/internal/usecase/update_person"
)

type UpdatePersonUseCase interface {
	Execute(ctx context.Context, req *updatePerson.Request) (*updatePerson.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
