package issue_booking_link

import (
	"time"

	issueBookingLink "github.com/archportal/booking-service/internal/usecase/issue_booking_link"
)

// IssueBookingLinkRequest HTTP request model
type IssueBookingLinkRequest struct {
	ContactName       string `json:"contactName"`
	ContactEmail      string `json:"contactEmail"`
	AppointmentTypeID *int64 `json:"appointmentTypeId,omitempty"`
	ExpiresInHours    *int   `json:"expiresInHours,omitempty"`
	SendEmail         bool   `json:"sendEmail"`
}

// BookingLinkResponse HTTP response model
type BookingLinkResponse struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
	EmailSent bool   `json:"emailSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *IssueBookingLinkRequest) ToUseCaseRequest(createdBy int64) *issueBookingLink.Request {
	return &issueBookingLink.Request{
		CreatedBy:         createdBy,
		ContactName:       r.ContactName,
		ContactEmail:      r.ContactEmail,
		AppointmentTypeID: r.AppointmentTypeID,
		ExpiresInHours:    r.ExpiresInHours,
		SendEmail:         r.SendEmail,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *issueBookingLink.Response) *BookingLinkResponse {
	return &BookingLinkResponse{
		Token:     resp.Token,
		URL:       resp.URL,
		ExpiresAt: resp.ExpiresAt.Format(time.RFC3339),
		EmailSent: resp.EmailSent,
	}
}
