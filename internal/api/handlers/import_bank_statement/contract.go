package import_bank_statement

import (
	"context"
	"io"

	"github.com/archportal/booking-service/internal/service/banking/models"
)

type BankingService interface {
	ImportStatement(ctx context.Context, r io.Reader) (*models.ImportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
