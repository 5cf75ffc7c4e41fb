package get_receipt

import (
	"context"

	"github.com/archportal/booking-service/internal/service/banking/models"
)

type ReceiptService interface {
	GetReceipt(ctx context.Context, id int64) (*models.ReceiptResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
