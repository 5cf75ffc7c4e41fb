package domain

import "time"

// CalendarProvider источник календаря
type CalendarProvider string

const (
	CalendarProviderGoogle CalendarProvider = "google"
	CalendarProviderICal   CalendarProvider = "ical"
)

// IsValid проверяет, что провайдер поддерживается
func (p CalendarProvider) IsValid() bool {
	return p == CalendarProviderGoogle || p == CalendarProviderICal
}

// CalendarRole роль календаря при расчёте доступности
type CalendarRole string

const (
	// CalendarRoleBlocking события календаря занимают время
	CalendarRoleBlocking CalendarRole = "blocking"
	// CalendarRoleInfo календарь только для информации
	CalendarRoleInfo CalendarRole = "info"
)

// IsValid проверяет, что роль поддерживается
func (r CalendarRole) IsValid() bool {
	return r == CalendarRoleBlocking || r == CalendarRoleInfo
}

// Calendar подключённый внешний календарь администратора.
// ExternalID для google это calendar id, для ical это URL фида
type Calendar struct {
	ID         int64
	UserID     int64
	Provider   CalendarProvider
	ExternalID string
	Name       string
	Role       CalendarRole
	IsPrimary  bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// IsBlocking возвращает true, если события календаря занимают время
func (c *Calendar) IsBlocking() bool {
	return c.Role == CalendarRoleBlocking
}

// CalendarConnectionStatus результат проверки подключения к календарю
type CalendarConnectionStatus struct {
	CalendarID int64
	Connected  bool
	Error      *string
	CheckedAt  time.Time
}
