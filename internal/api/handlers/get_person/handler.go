package get_person

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/persons"
)

const (
	msgInvalidPersonID = "invalid person id"
	msgNotFound        = "person not found"
)

type Handler struct {
	service PersonService
	logger  Logger
}

func NewHandler(service PersonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/persons/{personId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(mux.Vars(r)["personId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /persons/{id} - Invalid person ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPersonID)
		return
	}

	result, err := h.service.GetByID(r.Context(), personID)
	if err != nil {
		switch {
		case errors.Is(err, persons.ErrPersonNotFound):
			h.logger.Warn("GET /persons/{id} - Person not found: id=%d", personID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /persons/{id} - Failed to get person: id=%d, error=%v", personID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /persons/{id} - Person retrieved: id=%d", personID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
