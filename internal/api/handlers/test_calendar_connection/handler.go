package test_calendar_connection

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

// Handle GET /api/v1/calendars/{calendarId}/test
// Недоступность календаря не ошибка запроса: статус возвращается с 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id}/test - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	calendarID, err := strconv.ParseInt(mux.Vars(r)["calendarId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/test - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	result, err := h.service.TestConnection(r.Context(), calendarID, userID)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/test - Calendar not found: id=%d", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied):
			h.logger.Warn("GET /calendars/{id}/test - Access denied: id=%d, user_id=%d", calendarID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /calendars/{id}/test - Failed to test calendar: id=%d, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/test - Connection tested: id=%d, connected=%t", calendarID, result.Connected)
	handlers.RespondJSON(w, http.StatusOK, result)
}
