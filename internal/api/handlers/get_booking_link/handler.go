package get_booking_link

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/archportal/booking-service/internal/api/handlers"
	getBookingLink "github.com/archportal/booking-service/internal/usecase/get_booking_link"
)

const (
	msgTokenNotFound = "booking link not found"
	msgTokenUsed     = "booking link has already been used"
	msgTokenExpired  = "booking link has expired"
)

type Handler struct {
	useCase GetBookingLinkUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingLinkUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-links/{token}
// Публичный endpoint - токен и есть авторизация
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), &getBookingLink.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, getBookingLink.ErrTokenNotFound):
			h.logger.Warn("GET /booking-links/{token} - Unknown token")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, getBookingLink.ErrTokenUsed):
			h.logger.Warn("GET /booking-links/{token} - Token already used")
			handlers.RespondBadRequest(w, msgTokenUsed)

		case errors.Is(err, getBookingLink.ErrTokenExpired):
			h.logger.Warn("GET /booking-links/{token} - Token expired")
			handlers.RespondGone(w, msgTokenExpired)

		default:
			h.logger.Error("GET /booking-links/{token} - Failed to get booking link: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-links/{token} - Booking link retrieved")
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
