package persons

import (
	"context"

	"github.com/archportal/booking-service/internal/domain"
)

// PersonRepository интерфейс репозитория контактов
type PersonRepository interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	ReplaceEmails(ctx context.Context, personID int64, emails []domain.PersonEmail) error
	ReplacePhones(ctx context.Context, personID int64, phones []domain.PersonPhone) error
	ReplaceAddresses(ctx context.Context, personID int64, addresses []domain.PersonAddress) error
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
