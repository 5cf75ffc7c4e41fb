package list_appointment_types

import (
	"net/http"
	"strconv"

	"github.com/archportal/booking-service/internal/api/handlers"
)

const msgInvalidParams = "invalid query parameters"

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

// Handle GET /api/v1/appointment-types
// Query params: includeInactive (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if s := r.URL.Query().Get("includeInactive"); s != "" {
		parsed, err := strconv.ParseBool(s)
		if err != nil {
			h.logger.Warn("GET /appointment-types - Invalid includeInactive: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		includeInactive = parsed
	}

	result, err := h.service.List(r.Context(), !includeInactive)
	if err != nil {
		h.logger.Error("GET /appointment-types - Failed to list appointment types: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointment-types - Appointment types retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
