package models

import "github.com/archportal/booking-service/internal/domain"

// Request модели

// UpdateWorkingHoursRequest запрос на замену недельного расписания целиком
type UpdateWorkingHoursRequest struct {
	UserID int64              `json:"-"`
	Hours  domain.WeeklyHours `json:"hours"`
}

// Response модели

// WorkingHoursResponse ответ с недельным расписанием
type WorkingHoursResponse struct {
	Hours domain.WeeklyHours `json:"hours"`
	// IsDefault true, если пользователь ещё не настраивал расписание
	IsDefault bool `json:"isDefault"`
}
