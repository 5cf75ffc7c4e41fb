package models

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// Request модели

// SaveAppointmentTypeRequest запрос на создание или изменение типа встречи
type SaveAppointmentTypeRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// ToDomain конвертирует request в domain модель. Без флага active тип активен
func (r *SaveAppointmentTypeRequest) ToDomain(id int64) *domain.AppointmentType {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.AppointmentType{
		ID:              id,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		IsActive:        active,
	}
}

// Response модели

// AppointmentTypeResponse тип встречи
type AppointmentTypeResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     *string `json:"description,omitempty"`
	Active          bool    `json:"active"`
	CreatedAt       string  `json:"createdAt"`
}

// FromDomainAppointmentType конвертирует domain модель в response
func FromDomainAppointmentType(t *domain.AppointmentType) *AppointmentTypeResponse {
	return &AppointmentTypeResponse{
		ID:              t.ID,
		Name:            t.Name,
		DurationMinutes: t.DurationMinutes,
		Description:     t.Description,
		Active:          t.IsActive,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentTypeList конвертирует список domain моделей
func FromDomainAppointmentTypeList(types []*domain.AppointmentType) []*AppointmentTypeResponse {
	out := make([]*AppointmentTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, FromDomainAppointmentType(t))
	}
	return out
}
