package get_availability

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	getAvailability "github.com/archportal/booking-service/internal/usecase/get_availability"
)

const (
	msgMissingDates         = "start and end dates are required"
	msgInvalidParams        = "invalid query parameters"
	msgRangeTooLarge        = "requested date range is too large"
	msgTypeNotFound         = "appointment type not found"
	msgScheduleNotAvailable = "schedule is not available"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: start, end (YYYY-MM-DD, обязательные), duration, appointmentTypeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("start") == "" || query.Get("end") == "" {
		h.logger.Warn("GET /availability - Missing dates")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	useCaseReq, err := ToUseCaseRequest(query)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, getAvailability.ErrInvalidInput))

		case errors.Is(err, getAvailability.ErrRangeTooLarge):
			h.logger.Warn("GET /availability - Range too large: start=%s, end=%s", useCaseReq.StartDate, useCaseReq.EndDate)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailability.ErrAppointmentTypeNotFound):
			h.logger.Warn("GET /availability - Appointment type not found: id=%v", useCaseReq.AppointmentTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, getAvailability.ErrAdminUnavailable):
			h.logger.Error("GET /availability - Admin user unavailable")
			handlers.RespondServiceUnavailable(w, msgScheduleNotAvailable)

		default:
			h.logger.Error("GET /availability - Failed to get availability: start=%s, end=%s, error=%v",
				useCaseReq.StartDate, useCaseReq.EndDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved successfully: start=%s, end=%s, slots_count=%d",
		useCaseReq.StartDate, useCaseReq.EndDate, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
