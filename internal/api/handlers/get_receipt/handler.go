package get_receipt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/banking"
)

const (
	msgInvalidReceiptID = "invalid receipt id"
	msgNotFound         = "receipt not found"
)

type Handler struct {
	service ReceiptService
	logger  Logger
}

func NewHandler(service ReceiptService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/receipts/{receiptId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	receiptID, err := strconv.ParseInt(mux.Vars(r)["receiptId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /receipts/{id} - Invalid receipt ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReceiptID)
		return
	}

	result, err := h.service.GetReceipt(r.Context(), receiptID)
	if err != nil {
		switch {
		case errors.Is(err, banking.ErrReceiptNotFound):
			h.logger.Warn("GET /receipts/{id} - Receipt not found: id=%d", receiptID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /receipts/{id} - Failed to get receipt: id=%d, error=%v", receiptID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /receipts/{id} - Receipt retrieved: id=%d", receiptID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
