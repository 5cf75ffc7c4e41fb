package issue_booking_link

import (
	"errors"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/api/middleware"
	issueBookingLink "github.com/archportal/booking-service/internal/usecase/issue_booking_link"
)

const (
	msgMissingUserID      = "missing user id"
	msgInvalidRequestBody = "invalid request body"
	msgTypeNotFound       = "appointment type not found"
)

type Handler struct {
	useCase IssueBookingLinkUseCase
	logger  Logger
}

func NewHandler(useCase IssueBookingLinkUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/booking-links
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-links - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req IssueBookingLinkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-links - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, issueBookingLink.ErrInvalidInput):
			h.logger.Warn("POST /booking-links - Invalid input: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, issueBookingLink.ErrInvalidInput))

		case errors.Is(err, issueBookingLink.ErrAppointmentTypeNotFound):
			h.logger.Warn("POST /booking-links - Appointment type not found: id=%v", req.AppointmentTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		default:
			h.logger.Error("POST /booking-links - Failed to issue booking link: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-links - Booking link issued: user_id=%d, expires_at=%s, email_sent=%t",
		userID, result.ExpiresAt.Format("2006-01-02T15:04"), result.EmailSent)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
