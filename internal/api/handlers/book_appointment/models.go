package book_appointment

import (
	"time"

	bookAppointment "github.com/archportal/booking-service/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	Token     string  `json:"token"`
	StartTime string  `json:"startTime"` // RFC3339
	EndTime   string  `json:"endTime"`   // RFC3339
	Notes     *string `json:"notes,omitempty"`
}

// BookAppointmentResponse HTTP response model
type BookAppointmentResponse struct {
	Success     bool                `json:"success"`
	Appointment AppointmentResponse `json:"appointment"`
}

// AppointmentResponse созданная запись
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Title     string `json:"title"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() *bookAppointment.Request {
	return &bookAppointment.Request{
		Token:     r.Token,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Notes:     r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *BookAppointmentResponse {
	return &BookAppointmentResponse{
		Success: true,
		Appointment: AppointmentResponse{
			ID:        resp.ID,
			StartTime: resp.StartTime.Format(time.RFC3339),
			EndTime:   resp.EndTime.Format(time.RFC3339),
			Title:     resp.Title,
		},
	}
}
