package get_booking_link

import (
	"context"

	getBookingLink "github.com/archportal/booking-service/internal/usecase/get_booking_link"
)

type GetBookingLinkUseCase interface {
	Execute(ctx context.Context, req *getBookingLink.Request) (*getBookingLink.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
