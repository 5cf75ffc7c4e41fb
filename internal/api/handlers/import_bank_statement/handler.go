package import_bank_statement

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/service/banking"
)

const (
	formField         = "file"
	maxStatementBytes = 5 << 20

	msgMissingFile   = "statement file is required"
	msgFileTooLarge  = "statement is too large"
	msgInvalidFormat = "invalid statement format"
)

type Handler struct {
	service BankingService
	logger  Logger
}

func NewHandler(service BankingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bank-statements
// Принимает CSV как multipart поле "file" или как тело запроса text/csv
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxStatementBytes)

	source, closeFn, err := statementReader(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /bank-statements - Request too large")
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		h.logger.Warn("POST /bank-statements - Missing file: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer closeFn()

	result, err := h.service.ImportStatement(r.Context(), source)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.logger.Warn("POST /bank-statements - Request too large")
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)

		case errors.Is(err, banking.ErrInvalidStatement):
			h.logger.Warn("POST /bank-statements - Invalid statement: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFormat)

		default:
			h.logger.Error("POST /bank-statements - Failed to import statement: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bank-statements - Statement imported: imported=%d, skipped=%d, errors=%d",
		result.Imported, result.Skipped, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func statementReader(r *http.Request) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile(formField)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}
