package delete_calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/service/calendars"
)

const (
	msgMissingUserID     = "missing user id"
	msgInvalidCalendarID = "invalid calendar id"
	msgNotFound          = "calendar not found"
	msgAccessDenied      = "access denied"
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

// Handle DELETE /api/v1/calendars/{calendarId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /calendars/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	calendarID, err := strconv.ParseInt(mux.Vars(r)["calendarId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /calendars/{id} - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	if err := h.service.Delete(r.Context(), calendarID, userID); err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("DELETE /calendars/{id} - Calendar not found: id=%d", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied):
			h.logger.Warn("DELETE /calendars/{id} - Access denied: id=%d, user_id=%d", calendarID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /calendars/{id} - Failed to delete calendar: id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /calendars/{id} - Calendar deleted: id=%d, user_id=%d", calendarID, userID)
	w.WriteHeader(http.StatusNoContent)
}
