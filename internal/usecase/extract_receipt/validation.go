package extract_receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/archportal/booking-service/internal/domain"
)

const maxFileNameLength = 255

var supportedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"image/heic":      {},
}

func validateRequest(req *Request) error {
	if len(req.Data) == 0 {
		return fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if len(req.Data) > domain.MaxReceiptSizeBytes {
		return fmt.Errorf("%w: at most %d MB allowed", ErrFileTooLarge, domain.MaxReceiptSizeBytes>>20)
	}

	if utf8.RuneCountInString(req.FileName) > maxFileNameLength {
		return fmt.Errorf("%w: file name is longer than %d characters", ErrInvalidInput, maxFileNameLength)
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.SplitN(req.MimeType, ";", 2)[0]))
	if _, ok := supportedMimeTypes[mimeType]; !ok {
		return fmt.Errorf("%w: unsupported file type %q", ErrInvalidInput, req.MimeType)
	}
	req.MimeType = mimeType

	return nil
}
