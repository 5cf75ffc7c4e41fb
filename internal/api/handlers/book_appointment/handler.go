package book_appointment

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	bookAppointment "github.com/archportal/booking-service/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgTokenNotFound      = "booking link not found"
	msgTokenUsed          = "booking link has already been used"
	msgTokenExpired       = "booking link has expired"
	msgSlotUnavailable    = "time slot is no longer available"
	msgAdminUnavailable   = "booking is temporarily unavailable"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/book-appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /book-appointment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /book-appointment - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, bookAppointment.ErrInvalidInput))

		case errors.Is(err, bookAppointment.ErrTokenNotFound):
			h.logger.Warn("POST /book-appointment - Unknown token")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, bookAppointment.ErrTokenUsed):
			h.logger.Warn("POST /book-appointment - Token already used")
			handlers.RespondBadRequest(w, msgTokenUsed)

		case errors.Is(err, bookAppointment.ErrTokenExpired):
			h.logger.Warn("POST /book-appointment - Token expired")
			handlers.RespondGone(w, msgTokenExpired)

		case errors.Is(err, bookAppointment.ErrSlotUnavailable):
			h.logger.Warn("POST /book-appointment - Slot unavailable")
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, bookAppointment.ErrAdminUnavailable):
			h.logger.Error("POST /book-appointment - Admin user unavailable")
			handlers.RespondServiceUnavailable(w, msgAdminUnavailable)

		default:
			h.logger.Error("POST /book-appointment - Failed to book appointment: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /book-appointment - Appointment booked successfully: appointment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
