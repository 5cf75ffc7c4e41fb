package appointmenttypes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	typeRepo "github.com/archportal/booking-service/internal/infra/storage/appointmenttype"
	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
)

const (
	minDurationMinutes = 5
	maxDurationMinutes = 480
	maxNameLength      = 100
)

// Service сервис типов встреч
type Service struct {
	typeRepo AppointmentTypeRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса типов встреч
func NewService(typeRepo AppointmentTypeRepository, logger Logger) *Service {
	return &Service{
		typeRepo: typeRepo,
		logger:   logger,
	}
}

// List возвращает типы встреч. Публичный список содержит только активные
func (s *Service) List(ctx context.Context, onlyActive bool) ([]*models.AppointmentTypeResponse, error) {
	types, err := s.typeRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAppointmentTypeList(types), nil
}

// Create создает тип встречи
func (s *Service) Create(ctx context.Context, req *models.SaveAppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	s.logger.Info("Create: creating appointment type name=%q, duration=%d", req.Name, req.DurationMinutes)

	if err := validate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.typeRepo.Create(ctx, req.ToDomain(0))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: appointment type id=%d created", created.ID)
	return models.FromDomainAppointmentType(created), nil
}

// Update заменяет поля типа встречи
func (s *Service) Update(ctx context.Context, id int64, req *models.SaveAppointmentTypeRequest) (*models.AppointmentTypeResponse, error) {
	s.logger.Info("Update: updating appointment type id=%d", id)

	if err := validate(req); err != nil {
		s.logger.Warn("Update: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	if err := s.typeRepo.Update(ctx, req.ToDomain(id)); err != nil {
		if errors.Is(err, typeRepo.ErrAppointmentTypeNotFound) {
			s.logger.Warn("Update: appointment type id=%d not found", id)
			return nil, ErrAppointmentTypeNotFound
		}
		s.logger.Error("Update: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentType(updated), nil
}

func validate(req *models.SaveAppointmentTypeRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, maxNameLength)
	}
	if req.DurationMinutes < minDurationMinutes || req.DurationMinutes > maxDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, minDurationMinutes, maxDurationMinutes)
	}
	req.Name = name
	return nil
}
