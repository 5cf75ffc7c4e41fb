package upload_receipt

import (
	"context"

	extractReceipt "github.com/archportal/booking-service/internal/usecase/extract_receipt"
)

type ExtractReceiptUseCase interface {
	Execute(ctx context.Context, req *extractReceipt.Request) (*extractReceipt.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
