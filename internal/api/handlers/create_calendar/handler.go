package create_calendar

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/service/calendars"
	"github.com/archportal/booking-service/internal/service/calendars/models"
)

const (
	msgMissingUserID      = "missing user id"
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("POST /calendars - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, handlers.Detail(err, calendars.ErrInvalidInput))

		default:
			h.logger.Error("POST /calendars - Failed to create calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars - Calendar created: id=%d, provider=%s, user_id=%d", result.ID, result.Provider, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
