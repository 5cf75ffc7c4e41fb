package extract_receipt

import (
	"context"
	"time"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/internal/integrations/gemini"
)

// Extractor распознаёт данные чека из файла
type Extractor interface {
	ExtractReceipt(ctx context.Context, mimeType string, data []byte) (*gemini.ReceiptData, error)
}

// ReceiptRepository интерфейс репозитория чеков
type ReceiptRepository interface {
	Create(ctx context.Context, rc *domain.Receipt) (*domain.Receipt, error)
	SetMatch(ctx context.Context, receiptID, transactionID int64, score float64) error
}

// TransactionRepository интерфейс репозитория банковских операций
type TransactionRepository interface {
	ListUnmatched(ctx context.Context, from, to time.Time) ([]*domain.BankTransaction, error)
	SetReceipt(ctx context.Context, transactionID, receiptID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики обработки чеков
type Metrics interface {
	IncReceiptProcessed(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
