package update_person

import (
	"context"
	"errors"
	"fmt"

	"github.com/archportal/booking-service/internal/domain"
	personRepo "github.com/archportal/booking-service/internal/infra/storage/person"
)

// UseCase use case обновления контакта
type UseCase struct {
	persons   PersonRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(persons PersonRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		persons:   persons,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute обновляет контакт и заменяет его emails, телефоны и адреса в одной транзакции.
// При любой ошибке не сохраняется ничего
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	p := req.Person
	uc.logger.Info("UpdatePerson: id=%d, emails=%d, phones=%d, addresses=%d",
		p.ID, len(p.Emails), len(p.Phones), len(p.Addresses))

	// 1. Валидация
	if p.ID <= 0 {
		return nil, fmt.Errorf("%w: person id is required", ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		uc.logger.Warn("UpdatePerson: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Все изменения в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.persons.Update(txCtx, &p); err != nil {
			return uc.mapError("update person", err)
		}
		if err := uc.persons.ReplaceEmails(txCtx, p.ID, p.Emails); err != nil {
			return uc.mapError("replace emails", err)
		}
		if err := uc.persons.ReplacePhones(txCtx, p.ID, p.Phones); err != nil {
			return uc.mapError("replace phones", err)
		}
		if err := uc.persons.ReplaceAddresses(txCtx, p.ID, p.Addresses); err != nil {
			return uc.mapError("replace addresses", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Warn("UpdatePerson: id=%d rolled back: %v", p.ID, err)
		return nil, err
	}

	// 3. Перечитываем контакт с присвоенными id дочерних записей
	updated, err := uc.persons.GetByID(ctx, p.ID)
	if err != nil {
		uc.logger.Error("UpdatePerson: failed to reload person id=%d: %v", p.ID, err)
		return nil, fmt.Errorf("%w: failed to reload person: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdatePerson: id=%d updated", p.ID)
	return &Response{Person: updated}, nil
}

func (uc *UseCase) mapError(step string, err error) error {
	switch {
	case errors.Is(err, personRepo.ErrPersonNotFound):
		return ErrPersonNotFound
	case errors.Is(err, personRepo.ErrDuplicateContact):
		return fmt.Errorf("%w: %v", ErrDuplicateContact, err)
	case errors.Is(err, domain.ErrInvalidPerson):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("UpdatePerson: failed to %s: %v", step, err)
		return fmt.Errorf("%w: failed to %s: %v", ErrInternal, step, err)
	}
}
