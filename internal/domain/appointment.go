package domain

import "time"

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента к архитектору
type Appointment struct {
	ID                int64
	UserID            int64
	AppointmentTypeID *int64
	BookingTokenID    *int64
	ContactName       string
	ContactEmail      string
	Title             string
	Notes             *string
	StartTime         time.Time
	EndTime           time.Time
	Status            AppointmentStatus
	CalendarEventID   *string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// IsActive возвращает true, если запись занимает время в расписании
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusConfirmed
}

// CanBeCancelled отменить можно только подтверждённую запись
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentStatusConfirmed
}

// AsBusyInterval интервал, который запись занимает в расписании
func (a *Appointment) AsBusyInterval() BusyInterval {
	return BusyInterval{Start: a.StartTime, End: a.EndTime}
}

// AppointmentFilter фильтр выборки записей
type AppointmentFilter struct {
	UserID     *int64
	From       *time.Time
	To         *time.Time
	Status     *AppointmentStatus
	OnlyActive bool
}

// AppointmentType тип встречи (консультация, выезд на объект и т.д.)
type AppointmentType struct {
	ID              int64
	Name            string
	Description     *string
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
