package domain

// Параметры генерации слотов по умолчанию
const (
	DefaultSlotStepMinutes     = 15
	DefaultSlotDurationMinutes = 60
	DefaultMaxRangeDays        = 31
	DefaultTokenTTLHours       = 72
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MaxNotesLength         = 2000
	MaxTokenTTLHours       = 24 * 60
	MaxReceiptSizeBytes    = 10 << 20
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DemoBusyStartTimes время начала слотов, помечаемых занятыми в демо-режиме
// (когда интеграция с календарём недоступна)
var DemoBusyStartTimes = []string{"10:30", "14:00", "15:30"}
