package update_working_hours

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/service/workinghours"
	"github.com/archportal/booking-service/internal/service/workinghours/models"
)

const (
	msgMissingUserID      = "missing user id"
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service WorkingHoursService
	logger  Logger
}

func NewHandler(service WorkingHoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/working-hours
// Тело: {"hours":{"monday":[{"start":"09:00","end":"12:00"}], ...}}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.UpdateWorkingHoursRequest{UserID: userID}
	if err := handlers.DecodeJSON(r, req); err != nil {
		h.logger.Warn("PUT /working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, workinghours.ErrInvalidInput):
			h.logger.Warn("PUT /working-hours - Invalid working hours: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, handlers.Detail(err, workinghours.ErrInvalidInput))

		default:
			h.logger.Error("PUT /working-hours - Failed to update working hours: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /working-hours - Working hours updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
