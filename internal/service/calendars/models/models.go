package models

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// Request модели

// CreateCalendarRequest запрос на подключение календаря
type CreateCalendarRequest struct {
	UserID     int64  `json:"-"`
	Provider   string `json:"provider"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsPrimary  bool   `json:"isPrimary"`
}

// ToDomain конвертирует request в domain модель. Роль по умолчанию blocking
func (r *CreateCalendarRequest) ToDomain() *domain.Calendar {
	role := domain.CalendarRole(r.Role)
	if r.Role == "" {
		role = domain.CalendarRoleBlocking
	}
	return &domain.Calendar{
		UserID:     r.UserID,
		Provider:   domain.CalendarProvider(r.Provider),
		ExternalID: r.ExternalID,
		Name:       r.Name,
		Role:       role,
		IsPrimary:  r.IsPrimary,
	}
}

// Response модели

// CalendarResponse подключённый календарь
type CalendarResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	Provider   string `json:"provider"`
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	IsPrimary  bool   `json:"isPrimary"`
	CreatedAt  string `json:"createdAt"`
}

// ConnectionStatusResponse результат проверки подключения
type ConnectionStatusResponse struct {
	CalendarID int64   `json:"calendarId"`
	Connected  bool    `json:"connected"`
	Error      *string `json:"error,omitempty"`
	CheckedAt  string  `json:"checkedAt"`
}

// FromDomainCalendar конвертирует domain модель в response
func FromDomainCalendar(c *domain.Calendar) *CalendarResponse {
	return &CalendarResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Provider:   string(c.Provider),
		ExternalID: c.ExternalID,
		Name:       c.Name,
		Role:       string(c.Role),
		IsPrimary:  c.IsPrimary,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainCalendarList конвертирует список domain моделей
func FromDomainCalendarList(calendars []*domain.Calendar) []*CalendarResponse {
	out := make([]*CalendarResponse, 0, len(calendars))
	for _, c := range calendars {
		out = append(out, FromDomainCalendar(c))
	}
	return out
}

// FromDomainConnectionStatus конвертирует результат проверки в response
func FromDomainConnectionStatus(s domain.CalendarConnectionStatus) *ConnectionStatusResponse {
	return &ConnectionStatusResponse{
		CalendarID: s.CalendarID,
		Connected:  s.Connected,
		Error:      s.Error,
		CheckedAt:  s.CheckedAt.Format(time.RFC3339),
	}
}
