package create_appointment_type

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/appointmenttypes"
	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	service AppointmentTypeService
	logger  Logger
}

func NewHandler(service AppointmentTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointment-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SaveAppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmenttypes.ErrInvalidInput):
			h.logger.Warn("POST /appointment-types - Invalid data: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, appointmenttypes.ErrInvalidInput))

		default:
			h.logger.Error("POST /appointment-types - Failed to create appointment type: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment-types - Appointment type created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
