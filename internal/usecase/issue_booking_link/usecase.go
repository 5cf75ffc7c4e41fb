package issue_booking_link

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/archportal/booking-service/internal/domain"
	typeRepo "github.com/archportal/booking-service/internal/infra/storage/appointmenttype"
	tokenRepo "github.com/archportal/booking-service/internal/infra/storage/bookingtoken"
	"github.com/archportal/booking-service/internal/integrations/mailer"
)

// maxGenerateAttempts количество попыток при совпадении токена
const maxGenerateAttempts = 3

// UseCase use case выдачи одноразовой ссылки на запись
type UseCase struct {
	tokens       TokenRepository
	types        AppointmentTypeRepository
	mail         InvitationSender
	generate     TokenGenerator
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. mail может быть nil
func NewUseCase(
	tokens TokenRepository,
	types AppointmentTypeRepository,
	mail InvitationSender,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DefaultTTLHours <= 0 {
		opts.DefaultTTLHours = domain.DefaultTokenTTLHours
	}
	return &UseCase{
		tokens:       tokens,
		types:        types,
		mail:         mail,
		generate:     NewToken,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// NewToken случайный UUIDv4 без дефисов
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Execute выполняет use case выдачи ссылки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("IssueBookingLink: admin=%d, email=%s", req.CreatedBy, req.ContactEmail)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("IssueBookingLink: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем тип встречи
	if req.AppointmentTypeID != nil {
		t, err := uc.types.GetByID(ctx, *req.AppointmentTypeID)
		if err != nil {
			if errors.Is(err, typeRepo.ErrAppointmentTypeNotFound) {
				uc.logger.Warn("IssueBookingLink: appointment type id=%d not found", *req.AppointmentTypeID)
				return nil, ErrAppointmentTypeNotFound
			}
			uc.logger.Error("IssueBookingLink: failed to get appointment type: %v", err)
			return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
		}
		if !t.IsActive {
			uc.logger.Warn("IssueBookingLink: appointment type id=%d is inactive", t.ID)
			return nil, ErrAppointmentTypeNotFound
		}
	}

	// 3. Срок действия
	ttl := uc.opts.DefaultTTLHours
	if req.ExpiresInHours != nil {
		ttl = *req.ExpiresInHours
	}
	expiresAt := uc.timeProvider.Now().Add(time.Duration(ttl) * time.Hour)

	// 4. Сохраняем токен
	created, err := uc.store(ctx, req, expiresAt)
	if err != nil {
		return nil, err
	}

	link := uc.buildURL(created.Token)
	uc.logger.Info("IssueBookingLink: issued token id=%d, expires at %s", created.ID, expiresAt.Format(time.RFC3339))

	resp := &Response{
		Token:     created.Token,
		URL:       link,
		ExpiresAt: created.ExpiresAt,
	}

	// 5. Письмо-приглашение не влияет на результат
	if req.SendEmail && uc.mail != nil {
		err := uc.mail.SendInvitation(ctx, mailer.Invitation{
			ToName:    created.ContactName,
			ToEmail:   created.ContactEmail,
			URL:       link,
			ExpiresAt: created.ExpiresAt,
		})
		if err != nil {
			uc.logger.Warn("IssueBookingLink: invitation for token id=%d not sent: %v", created.ID, err)
		} else {
			resp.EmailSent = true
		}
	}

	return resp, nil
}

func (uc *UseCase) store(ctx context.Context, req *Request, expiresAt time.Time) (*domain.BookingToken, error) {
	for attempt := 1; ; attempt++ {
		created, err := uc.tokens.Create(ctx, &domain.BookingToken{
			Token:             uc.generate(),
			ContactName:       strings.TrimSpace(req.ContactName),
			ContactEmail:      strings.TrimSpace(req.ContactEmail),
			AppointmentTypeID: req.AppointmentTypeID,
			ExpiresAt:         expiresAt,
			CreatedBy:         req.CreatedBy,
		})
		if err == nil {
			return created, nil
		}

		if errors.Is(err, tokenRepo.ErrTokenExists) && attempt < maxGenerateAttempts {
			uc.logger.Warn("IssueBookingLink: token collision, regenerating")
			continue
		}

		uc.logger.Error("IssueBookingLink: failed to create token: %v", err)
		return nil, fmt.Errorf("%w: failed to create token: %v", ErrInternal, err)
	}
}

func (uc *UseCase) buildURL(token string) string {
	base, err := url.Parse(uc.opts.PublicURL)
	if err != nil || uc.opts.PublicURL == "" {
		return "?token=" + url.QueryEscape(token)
	}
	q := base.Query()
	q.Set("token", token)
	base.RawQuery = q.Encode()
	return base.String()
}
