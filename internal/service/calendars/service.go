package calendars

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/archportal/booking-service/internal/domain"
	calendarRepo "github.com/archportal/booking-service/internal/infra/storage/calendar"
	"github.com/archportal/booking-service/internal/service/calendars/models"
	"github.com/archportal/booking-service/pkg/ptr"
)

// Service сервис подключённых календарей
type Service struct {
	calendarRepo CalendarRepository
	pingers      map[domain.CalendarProvider]Pinger
	txManager    TransactionManager
	cache        StatusCache
	clock        Clock
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(
	calendarRepo CalendarRepository,
	pingers map[domain.CalendarProvider]Pinger,
	txManager TransactionManager,
	cache StatusCache,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		pingers:      pingers,
		txManager:    txManager,
		cache:        cache,
		clock:        clock,
		logger:       logger,
	}
}

// List получает календари пользователя
func (s *Service) List(ctx context.Context, userID int64) ([]*models.CalendarResponse, error) {
	calendars, err := s.calendarRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCalendarList(calendars), nil
}

// Create подключает календарь. Новый основной календарь снимает признак с прежнего
func (s *Service) Create(ctx context.Context, req *models.CreateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Create: registering %s calendar for user=%d, primary=%t", req.Provider, req.UserID, req.IsPrimary)

	c := req.ToDomain()
	if err := validate(c); err != nil {
		s.logger.Warn("Create: validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	var created *domain.Calendar
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if c.IsPrimary {
			if err := s.calendarRepo.ClearPrimary(txCtx, c.UserID); err != nil {
				return err
			}
		}
		var err error
		created, err = s.calendarRepo.Create(txCtx, c)
		return err
	})
	if err != nil {
		s.logger.Error("Create: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: calendar id=%d registered", created.ID)
	return models.FromDomainCalendar(created), nil
}

// Delete отключает календарь пользователя
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: removing calendar id=%d by user=%d", id, userID)

	if _, err := s.get(ctx, "Delete", id, userID); err != nil {
		return err
	}

	if err := s.calendarRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			return ErrCalendarNotFound
		}
		s.logger.Error("Delete: repository error for calendar id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.cache.Delete(id)
	return nil
}

// TestConnection проверяет доступ к календарю у провайдера.
// Результат кэшируется, повторные проверки в пределах TTL не обращаются к провайдеру
func (s *Service) TestConnection(ctx context.Context, id int64, userID int64) (*models.ConnectionStatusResponse, error) {
	c, err := s.get(ctx, "TestConnection", id, userID)
	if err != nil {
		return nil, err
	}

	if status, ok := s.cache.Get(id); ok {
		return models.FromDomainConnectionStatus(status), nil
	}

	status := domain.CalendarConnectionStatus{CalendarID: id, Connected: true}

	pinger, ok := s.pingers[c.Provider]
	if !ok {
		status.Connected = false
		status.Error = ptr.Ptr(fmt.Sprintf("provider %q is not configured", c.Provider))
	} else if err := pinger.Ping(ctx, c.ExternalID); err != nil {
		s.logger.Warn("TestConnection: calendar id=%d is unreachable: %v", id, err)
		status.Connected = false
		status.Error = ptr.Ptr(err.Error())
	}
	status.CheckedAt = s.clock.Now()

	s.cache.Set(id, status)
	s.logger.Info("TestConnection: calendar id=%d connected=%t", id, status.Connected)
	return models.FromDomainConnectionStatus(status), nil
}

// get получает календарь и проверяет, что он принадлежит пользователю
func (s *Service) get(ctx context.Context, op string, id int64, userID int64) (*domain.Calendar, error) {
	c, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("%s: calendar id=%d not found", op, id)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("%s: repository error for calendar id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if c.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to calendar id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return c, nil
}

func validate(c *domain.Calendar) error {
	if !c.Provider.IsValid() {
		return fmt.Errorf("%w: provider must be google or ical", ErrInvalidInput)
	}
	if !c.Role.IsValid() {
		return fmt.Errorf("%w: role must be blocking or info", ErrInvalidInput)
	}
	c.ExternalID = strings.TrimSpace(c.ExternalID)
	if c.ExternalID == "" {
		return fmt.Errorf("%w: externalId is required", ErrInvalidInput)
	}
	if c.Provider == domain.CalendarProviderICal {
		u, err := url.Parse(c.ExternalID)
		if err != nil || u.Host == "" {
			return fmt.Errorf("%w: externalId must be a feed URL", ErrInvalidInput)
		}
		switch u.Scheme {
		case "http", "https", "webcal":
		default:
			return fmt.Errorf("%w: feed URL scheme must be http, https or webcal", ErrInvalidInput)
		}
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = c.ExternalID
	}
	return nil
}
