package issue_booking_link

import (
	"context"

	issueBookingLink "github.com/archportal/booking-service/internal/usecase/issue_booking_link"
)

type IssueBookingLinkUseCase interface {
	Execute(ctx context.Context, req *issueBookingLink.Request) (*issueBookingLink.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
