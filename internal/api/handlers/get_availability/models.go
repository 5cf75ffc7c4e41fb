package get_availability

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	getAvailability "github.com/archportal/booking-service/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Slots   []SlotResponse `json:"slots"`
	Warning *string        `json:"warning,omitempty"`
}

// SlotResponse модель кандидата на запись
type SlotResponse struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(query url.Values) (*getAvailability.Request, error) {
	req := &getAvailability.Request{
		StartDate: query.Get("start"),
		EndDate:   query.Get("end"),
	}

	if s := query.Get("duration"); s != "" {
		duration, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", s)
		}
		req.DurationMinutes = duration
	}

	if s := query.Get("appointmentTypeId"); s != "" {
		typeID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid appointmentTypeId %q", s)
		}
		req.AppointmentTypeID = &typeID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Start:     slot.Start.Format(time.RFC3339),
			End:       slot.End.Format(time.RFC3339),
			Available: slot.Available,
		}
	}

	return &AvailabilityResponse{
		Slots:   slots,
		Warning: resp.Warning,
	}
}
