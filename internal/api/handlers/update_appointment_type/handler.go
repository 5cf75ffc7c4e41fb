package update_appointment_type

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/appointmenttypes"
	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
)

const (
	msgInvalidTypeID      = "invalid appointment type id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "appointment type not found"
)

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

// Handle PUT /api/v1/appointment-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	typeID, err := strconv.ParseInt(mux.Vars(r)["typeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointment-types/{id} - Invalid type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	var req models.SaveAppointmentTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointment-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), typeID, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointmenttypes.ErrAppointmentTypeNotFound):
			h.logger.Warn("PUT /appointment-types/{id} - Not found: id=%d", typeID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmenttypes.ErrInvalidInput):
			h.logger.Warn("PUT /appointment-types/{id} - Invalid data: id=%d, error=%v", typeID, err)
			handlers.RespondBadRequest(w, handlers.Detail(err, appointmenttypes.ErrInvalidInput))

		default:
			h.logger.Error("PUT /appointment-types/{id} - Failed to update appointment type: id=%d, error=%v", typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointment-types/{id} - Appointment type updated: id=%d", typeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
