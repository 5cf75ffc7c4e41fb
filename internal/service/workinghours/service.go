package workinghours

import (
	"context"
	"errors"
	"fmt"

	"github.com/archportal/booking-service/internal/domain"
	hoursRepo "github.com/archportal/booking-service/internal/infra/storage/workinghours"
	"github.com/archportal/booking-service/internal/service/workinghours/models"
)

// Service сервис рабочих часов
type Service struct {
	hoursRepo WorkingHoursRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(hoursRepo WorkingHoursRepository, logger Logger) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		logger:    logger,
	}
}

// Resolve возвращает рабочие часы пользователя или расписание по умолчанию.
// Отсутствие настроек и ошибки хранилища не считаются ошибкой
func (s *Service) Resolve(ctx context.Context, userID int64) domain.WeeklyHours {
	hours, err := s.hoursRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, hoursRepo.ErrWorkingHoursNotFound) {
			s.logger.Error("Resolve: failed to load working hours for user=%d, using default: %v", userID, err)
		}
		return domain.DefaultWeeklyHours()
	}
	return *hours
}

// Get получает расписание для редактирования
func (s *Service) Get(ctx context.Context, userID int64) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Get: fetching working hours for user=%d", userID)

	hours, err := s.hoursRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrWorkingHoursNotFound) {
			return &models.WorkingHoursResponse{Hours: domain.DefaultWeeklyHours(), IsDefault: true}, nil
		}
		s.logger.Error("Get: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return &models.WorkingHoursResponse{Hours: *hours}, nil
}

// Update заменяет расписание пользователя
func (s *Service) Update(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("Update: updating working hours for user=%d", req.UserID)

	if err := req.Hours.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.hoursRepo.Upsert(ctx, req.UserID, req.Hours); err != nil {
		s.logger.Error("Update: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated working hours for user=%d", req.UserID)
	return &models.WorkingHoursResponse{Hours: req.Hours}, nil
}
