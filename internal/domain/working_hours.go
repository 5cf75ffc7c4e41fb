package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/archportal/booking-service/pkg/types"
)

var (
	// ErrInvalidTimeRange возвращается, когда начало диапазона не раньше конца
	ErrInvalidTimeRange = errors.New("time range start must be before end")

	// ErrOverlappingRanges возвращается, когда диапазоны дня пересекаются или не упорядочены
	ErrOverlappingRanges = errors.New("time ranges overlap or are not ordered")
)

// TimeRange открытый диапазон рабочего времени внутри дня
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyHours рабочие часы по дням недели
type WeeklyHours struct {
	Monday    []TimeRange `json:"monday"`
	Tuesday   []TimeRange `json:"tuesday"`
	Wednesday []TimeRange `json:"wednesday"`
	Thursday  []TimeRange `json:"thursday"`
	Friday    []TimeRange `json:"friday"`
	Saturday  []TimeRange `json:"saturday"`
	Sunday    []TimeRange `json:"sunday"`
}

// ForWeekday возвращает диапазоны для дня недели
func (w *WeeklyHours) ForWeekday(day time.Weekday) []TimeRange {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return nil
	}
}

// Validate проверяет, что в каждом дне start < end и диапазоны идут по возрастанию без пересечений
func (w *WeeklyHours) Validate() error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		ranges := w.ForWeekday(day)
		for i, r := range ranges {
			if r.Start.IsZero() || r.End.IsZero() || !r.Start.IsBefore(r.End) {
				return fmt.Errorf("%w: %s range #%d", ErrInvalidTimeRange, day, i+1)
			}
			if i > 0 && r.Start.IsBefore(ranges[i-1].End) {
				return fmt.Errorf("%w: %s range #%d", ErrOverlappingRanges, day, i+1)
			}
		}
	}
	return nil
}

// IsEmpty возвращает true, если ни в одном дне нет рабочих часов
func (w *WeeklyHours) IsEmpty() bool {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if len(w.ForWeekday(day)) > 0 {
			return false
		}
	}
	return true
}

// DefaultWeeklyHours расписание по умолчанию:
// Пн–Чт 09:00–12:00 и 13:00–18:00, Пт 09:00–12:00 и 13:00–17:00, выходные закрыты
func DefaultWeeklyHours() WeeklyHours {
	regular := func() []TimeRange {
		return []TimeRange{
			{Start: types.MustTimeString("09:00"), End: types.MustTimeString("12:00")},
			{Start: types.MustTimeString("13:00"), End: types.MustTimeString("18:00")},
		}
	}

	return WeeklyHours{
		Monday:    regular(),
		Tuesday:   regular(),
		Wednesday: regular(),
		Thursday:  regular(),
		Friday: []TimeRange{
			{Start: types.MustTimeString("09:00"), End: types.MustTimeString("12:00")},
			{Start: types.MustTimeString("13:00"), End: types.MustTimeString("17:00")},
		},
		Saturday: []TimeRange{},
		Sunday:   []TimeRange{},
	}
}
