package get_booking_link

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/archportal/booking-service/internal/domain"
	tokenRepo "github.com/archportal/booking-service/internal/infra/storage/bookingtoken"
	"github.com/archportal/booking-service/pkg/ptr"
)

// UseCase use case просмотра ссылки на запись
type UseCase struct {
	tokens          TokenRepository
	types           AppointmentTypeRepository
	defaultDuration int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(tokens TokenRepository, types AppointmentTypeRepository, defaultDuration int, logger Logger) *UseCase {
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultSlotDurationMinutes
	}
	return &UseCase{
		tokens:          tokens,
		types:           types,
		defaultDuration: defaultDuration,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает данные ссылки, если по ней ещё можно записаться
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Token) == "" {
		return nil, ErrTokenNotFound
	}

	token, err := uc.tokens.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			uc.logger.Warn("GetBookingLink: token not found")
			return nil, ErrTokenNotFound
		}
		uc.logger.Error("GetBookingLink: failed to get token: %v", err)
		return nil, fmt.Errorf("%w: failed to get token: %v", ErrInternal, err)
	}

	switch token.State(uc.timeProvider.Now()) {
	case domain.TokenStateUsed:
		return nil, ErrTokenUsed
	case domain.TokenStateExpired:
		return nil, ErrTokenExpired
	}

	resp := &Response{
		ContactName:       token.ContactName,
		AppointmentTypeID: token.AppointmentTypeID,
		DurationMinutes:   uc.defaultDuration,
		ExpiresAt:         token.ExpiresAt,
	}

	if token.AppointmentTypeID != nil {
		t, err := uc.types.GetByID(ctx, *token.AppointmentTypeID)
		if err != nil {
			// Тип могли удалить после выдачи ссылки: показываем длительность по умолчанию
			uc.logger.Warn("GetBookingLink: appointment type id=%d unavailable: %v", *token.AppointmentTypeID, err)
		} else {
			resp.AppointmentType = ptr.Ptr(t.Name)
			resp.DurationMinutes = t.DurationMinutes
		}
	}

	return resp, nil
}
