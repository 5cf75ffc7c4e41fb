package get_availability

import (
	"fmt"
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// parseDateRange разбирает даты запроса в часовом поясе бюро
func parseDateRange(req *Request, loc *time.Location, maxDays int) (time.Time, time.Time, error) {
	if req.StartDate == "" || req.EndDate == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	start, err := time.ParseInLocation(domain.DateFormat, req.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start must be YYYY-MM-DD", ErrInvalidInput)
	}

	end, err := time.ParseInLocation(domain.DateFormat, req.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end must be YYYY-MM-DD", ErrInvalidInput)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end must not be before start", ErrInvalidInput)
	}

	if days := daysBetween(start, end) + 1; maxDays > 0 && days > maxDays {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, maxDays)
	}

	return start, end, nil
}

// validateDuration проверяет длительность слота
func validateDuration(minutes int) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	return nil
}

// daysBetween количество календарных дней между датами (без учёта перехода на летнее время)
func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
