package list_appointments

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// start и end принимают YYYY-MM-DD или RFC3339, дата end включается целиком
func ToServiceRequest(userID int64, startStr, endStr, statusStr string, loc *time.Location) (*models.ListAppointmentsRequest, error) {
	req := &models.ListAppointmentsRequest{UserID: userID}

	if startStr != "" {
		start, _, err := parseBound(startStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = &start
	}

	if endStr != "" {
		end, dateOnly, err := parseBound(endStr, loc)
		if err != nil {
			return nil, err
		}
		if dateOnly {
			end = end.AddDate(0, 0, 1)
		}
		req.To = &end
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}

func parseBound(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(domain.DateFormat, s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
