package book_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// validateRequest проверяет запрос и возвращает разобранные время начала и конца
func validateRequest(req *Request, now time.Time) (time.Time, time.Time, error) {
	if strings.TrimSpace(req.Token) == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: malformed dates", ErrInvalidInput)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: malformed dates", ErrInvalidInput)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: malformed dates: end must be after start", ErrInvalidInput)
	}
	if !start.After(now) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: malformed dates: start must be in the future", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return start, end, nil
}
