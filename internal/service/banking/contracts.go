package banking

import (
	"context"

	"github.com/archportal/booking-service/internal/domain"
)

// TransactionRepository интерфейс репозитория банковских операций
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.BankTransaction) (bool, error)
}

// ReceiptRepository интерфейс репозитория чеков
type ReceiptRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Receipt, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
