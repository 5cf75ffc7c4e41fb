package persons

import (
	"context"
	"errors"
	"fmt"

	personRepo "github.com/archportal/booking-service/internal/infra/storage/person"
	"github.com/archportal/booking-service/internal/service/persons/models"
)

// Service сервис контактов
type Service struct {
	personRepo PersonRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса контактов
func NewService(personRepo PersonRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		personRepo: personRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByID получает контакт с emails, телефонами и адресами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PersonResponse, error) {
	p, err := s.personRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, personRepo.ErrPersonNotFound) {
			s.logger.Warn("GetByID: person id=%d not found", id)
			return nil, ErrPersonNotFound
		}
		s.logger.Error("GetByID: repository error for person id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPerson(p), nil
}

// Create создает контакт вместе с дочерними записями в одной транзакции
func (s *Service) Create(ctx context.Context, req *models.PersonRequest) (*models.PersonResponse, error) {
	p := req.ToDomain(0)
	s.logger.Info("Create: creating person %q", p.FullName())

	if err := p.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var id int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.personRepo.Create(txCtx, &p)
		if err != nil {
			return err
		}
		id = created.ID
		if err := s.personRepo.ReplaceEmails(txCtx, id, p.Emails); err != nil {
			return err
		}
		if err := s.personRepo.ReplacePhones(txCtx, id, p.Phones); err != nil {
			return err
		}
		return s.personRepo.ReplaceAddresses(txCtx, id, p.Addresses)
	})
	if err != nil {
		if errors.Is(err, personRepo.ErrDuplicateContact) {
			s.logger.Warn("Create: duplicate contact: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDuplicateContact, err)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: person id=%d created", id)
	return s.GetByID(ctx, id)
}
