package get_booking_link

import (
	"time"

	getBookingLink "github.com/archportal/booking-service/internal/usecase/get_booking_link"
)

// BookingLinkResponse HTTP response model
type BookingLinkResponse struct {
	ContactName       string  `json:"contactName"`
	AppointmentTypeID *int64  `json:"appointmentTypeId,omitempty"`
	AppointmentType   *string `json:"appointmentType,omitempty"`
	DurationMinutes   int     `json:"durationMinutes"`
	ExpiresAt         string  `json:"expiresAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingLink.Response) *BookingLinkResponse {
	return &BookingLinkResponse{
		ContactName:       resp.ContactName,
		AppointmentTypeID: resp.AppointmentTypeID,
		AppointmentType:   resp.AppointmentType,
		DurationMinutes:   resp.DurationMinutes,
		ExpiresAt:         resp.ExpiresAt.Format(time.RFC3339),
	}
}
