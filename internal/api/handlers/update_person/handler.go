package update_person

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/persons/models"
	updatePerson "github.com/archportal/booking-service/internal/usecase/update_person"
)

const (
	msgInvalidPersonID    = "invalid person id"
	msgInvalidRequestBody = "invalid request body"
	msgNotFound           = "person not found"
	msgDuplicateContact   = "email or phone already belongs to another person"
)

type Handler struct {
	useCase UpdatePersonUseCase
	logger  Logger
}

func NewHandler(useCase UpdatePersonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/persons/{personId}
// Списки emails, телефонов и адресов в теле заменяют сохранённые целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	personID, err := strconv.ParseInt(mux.Vars(r)["personId"], 10, 64)
	if err != nil || personID <= 0 {
		h.logger.Warn("PUT /persons/{id} - Invalid person ID: %s", mux.Vars(r)["personId"])
		handlers.RespondBadRequest(w, msgInvalidPersonID)
		return
	}

	var req models.PersonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /persons/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updatePerson.Request{Person: req.ToDomain(personID)})
	if err != nil {
		switch {
		case errors.Is(err, updatePerson.ErrInvalidInput):
			h.logger.Warn("PUT /persons/{id} - Invalid data: id=%d, error=%v", personID, err)
			handlers.RespondBadRequest(w, handlers.Detail(err, updatePerson.ErrInvalidInput))

		case errors.Is(err, updatePerson.ErrPersonNotFound):
			h.logger.Warn("PUT /persons/{id} - Person not found: id=%d", personID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updatePerson.ErrDuplicateContact):
			h.logger.Warn("PUT /persons/{id} - Duplicate contact: id=%d", personID)
			handlers.RespondConflict(w, msgDuplicateContact)

		default:
			h.logger.Error("PUT /persons/{id} - Failed to update person: id=%d, error=%v", personID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /persons/{id} - Person updated: id=%d", personID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainPerson(result.Person))
}
