package create_person

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/persons"
	"github.com/archportal/booking-service/internal/service/persons/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgDuplicateContact   = "email or phone already belongs to another person"
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

// Handle POST /api/v1/persons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.PersonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /persons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, persons.ErrInvalidInput):
			h.logger.Warn("POST /persons - Invalid data: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, persons.ErrInvalidInput))

		case errors.Is(err, persons.ErrDuplicateContact):
			h.logger.Warn("POST /persons - Duplicate contact: %v", err)
			handlers.RespondConflict(w, msgDuplicateContact)

		default:
			h.logger.Error("POST /persons - Failed to create person: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /persons - Person created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
