package issue_booking_link

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/archportal/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ContactName) == "" {
		return fmt.Errorf("%w: contactName is required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.ContactEmail); err != nil {
		return fmt.Errorf("%w: contactEmail is not a valid address", ErrInvalidInput)
	}

	if req.ExpiresInHours != nil {
		if h := *req.ExpiresInHours; h <= 0 || h > domain.MaxTokenTTLHours {
			return fmt.Errorf("%w: expiresInHours must be between 1 and %d", ErrInvalidInput, domain.MaxTokenTTLHours)
		}
	}

	return nil
}
