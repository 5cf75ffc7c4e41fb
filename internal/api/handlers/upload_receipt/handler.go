package upload_receipt

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/internal/service/banking/models"
	extractReceipt "github.com/archportal/booking-service/internal/usecase/extract_receipt"
)

const (
	formField = "file"
	// запас на заголовки multipart поверх размера файла
	formOverhead = 1 << 20

	msgMissingFile       = "multipart field \"file\" is required"
	msgFileTooLarge      = "file is too large"
	msgExtractionFailed  = "receipt could not be read"
	msgExtractorNotReady = "receipt extraction is unavailable"
)

type Handler struct {
	useCase ExtractReceiptUseCase
	logger  Logger
}

func NewHandler(useCase ExtractReceiptUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/receipts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxReceiptSizeBytes+formOverhead)

	file, header, err := r.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /receipts - Request too large")
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		h.logger.Warn("POST /receipts - Missing file: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxReceiptSizeBytes+1))
	if err != nil {
		h.logger.Warn("POST /receipts - Failed to read file: %v", err)
		handlers.RespondBadRequest(w, msgMissingFile)
		return
	}

	req := &extractReceipt.Request{
		FileName: header.Filename,
		MimeType: detectMimeType(header.Header.Get("Content-Type"), data),
		Data:     data,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, extractReceipt.ErrInvalidInput):
			h.logger.Warn("POST /receipts - Invalid file: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, extractReceipt.ErrInvalidInput))

		case errors.Is(err, extractReceipt.ErrFileTooLarge):
			h.logger.Warn("POST /receipts - File too large: size=%d", len(data))
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)

		case errors.Is(err, extractReceipt.ErrExtractionFailed):
			h.logger.Warn("POST /receipts - Extraction failed: %v", err)
			handlers.RespondBadGateway(w, msgExtractionFailed)

		case errors.Is(err, extractReceipt.ErrExtractorUnavailable):
			h.logger.Error("POST /receipts - Extractor unavailable: %v", err)
			handlers.RespondBadGateway(w, msgExtractorNotReady)

		default:
			h.logger.Error("POST /receipts - Failed to process receipt: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /receipts - Receipt stored: id=%d, status=%s", result.Receipt.ID, result.Receipt.Status)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReceipt(result.Receipt))
}

// detectMimeType берёт тип из заголовка части, иначе определяет по содержимому
func detectMimeType(declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return mediaType
		}
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mediaType
}
