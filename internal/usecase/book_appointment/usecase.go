package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/archportal/booking-service/internal/domain"
	tokenRepo "github.com/archportal/booking-service/internal/infra/storage/bookingtoken"
	userRepo "github.com/archportal/booking-service/internal/infra/storage/user"
	"github.com/archportal/booking-service/internal/integrations/googlecalendar"
	"github.com/archportal/booking-service/internal/integrations/mailer"
	"github.com/archportal/booking-service/pkg/ptr"
)

const defaultTitle = "Consultation"

// Options параметры сетки слотов
type Options struct {
	StepMinutes int
	Location    *time.Location
}

// UseCase use case записи клиента по одноразовой ссылке
type UseCase struct {
	users        UserRepository
	hours        WorkingHoursResolver
	tokens       TokenRepository
	appointments AppointmentRepository
	types        AppointmentTypeRepository
	calendars    CalendarRepository
	events       EventCreator
	mail         ConfirmationSender
	txManager    TransactionManager
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// events и mail могут быть nil, тогда соответствующий шаг пропускается
func NewUseCase(
	users UserRepository,
	hours WorkingHoursResolver,
	tokens TokenRepository,
	appointments AppointmentRepository,
	types AppointmentTypeRepository,
	calendars CalendarRepository,
	events EventCreator,
	mail ConfirmationSender,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.StepMinutes <= 0 {
		opts.StepMinutes = domain.DefaultSlotStepMinutes
	}

	return &UseCase{
		users:        users,
		hours:        hours,
		tokens:       tokens,
		appointments: appointments,
		types:        types,
		calendars:    calendars,
		events:       events,
		mail:         mail,
		txManager:    txManager,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case записи.
// Проверка пересечений, гашение токена и создание записи идут в одной сериализуемой транзакции;
// событие в календаре и письмо отправляются после коммита и на результат не влияют
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: start=%s, end=%s", req.StartTime, req.EndTime)

	created, admin, err := uc.book(ctx, req)
	if err != nil {
		uc.metrics.IncBookingRejected(rejectionReason(err))
		return nil, err
	}

	uc.metrics.IncBookingCompleted()
	uc.logger.Info("BookAppointment: created appointment id=%d for token id=%d", created.ID, *created.BookingTokenID)

	// Побочные эффекты после коммита
	uc.createCalendarEvent(ctx, admin.ID, created)
	uc.sendConfirmation(ctx, admin, created)

	return &Response{
		ID:        created.ID,
		StartTime: created.StartTime,
		EndTime:   created.EndTime,
		Title:     created.Title,
	}, nil
}

func (uc *UseCase) book(ctx context.Context, req *Request) (*domain.Appointment, *domain.User, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	start, end, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, nil, err
	}

	// 2. Администратор, к которому записываемся
	admin, err := uc.users.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Error("BookAppointment: no admin user configured")
			return nil, nil, ErrAdminUnavailable
		}
		uc.logger.Error("BookAppointment: failed to get admin user: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get admin user: %v", ErrInternal, err)
	}

	// 3. Окно должно совпадать со слотом рабочих часов
	hours := uc.hours.Resolve(ctx, admin.ID)
	if !domain.IsSlot(hours, start, end, uc.opts.StepMinutes, uc.opts.Location, now) {
		uc.logger.Warn("BookAppointment: window %s-%s is outside working hours", req.StartTime, req.EndTime)
		return nil, nil, fmt.Errorf("%w: requested time is outside working hours", ErrInvalidInput)
	}

	// 4. Токен и заголовок до транзакции: ошибка чтения внутри неё прервала бы транзакцию
	preview, err := uc.tokens.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			uc.logger.Warn("BookAppointment: token not found")
			return nil, nil, ErrTokenNotFound
		}
		uc.logger.Error("BookAppointment: failed to read token: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to read token: %v", ErrInternal, err)
	}
	if err := uc.checkTokenState(preview, now); err != nil {
		return nil, nil, err
	}
	title := uc.title(ctx, preview)

	var created *domain.Appointment

	// 5. Проверяем пересечения, гасим токен и создаём запись
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		active, err := uc.appointments.List(txCtx, domain.AppointmentFilter{
			UserID:     ptr.Ptr(admin.ID),
			From:       ptr.Ptr(start),
			To:         ptr.Ptr(end),
			OnlyActive: true,
		})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		if n := countOverlapping(active, start, end); n > 0 {
			uc.logger.Warn("BookAppointment: window %s-%s overlaps %d appointment(s)", req.StartTime, req.EndTime, n)
			return ErrSlotUnavailable
		}

		token, err := uc.tokens.Consume(txCtx, req.Token, now)
		if err != nil {
			if errors.Is(err, tokenRepo.ErrTokenNotConsumable) {
				return uc.classifyToken(txCtx, req.Token, now)
			}
			uc.logger.Error("BookAppointment: failed to consume token: %v", err)
			return fmt.Errorf("%w: failed to consume token: %v", ErrInternal, err)
		}

		appointment := &domain.Appointment{
			UserID:            admin.ID,
			AppointmentTypeID: token.AppointmentTypeID,
			BookingTokenID:    ptr.Ptr(token.ID),
			ContactName:       token.ContactName,
			ContactEmail:      token.ContactEmail,
			Title:             title,
			Notes:             req.Notes,
			StartTime:         start,
			EndTime:           end,
			Status:            domain.AppointmentStatusConfirmed,
		}

		created, err = uc.appointments.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return created, admin, nil
}

// countOverlapping считает активные записи, пересекающиеся с окном
func countOverlapping(appointments []*domain.Appointment, start, end time.Time) int {
	n := 0
	for _, a := range appointments {
		if a.Status == domain.AppointmentStatusConfirmed && a.AsBusyInterval().Overlaps(start, end) {
			n++
		}
	}
	return n
}

// classifyToken определяет, почему токен не удалось погасить
func (uc *UseCase) classifyToken(ctx context.Context, value string, now time.Time) error {
	token, err := uc.tokens.GetByToken(ctx, value)
	if err != nil {
		if errors.Is(err, tokenRepo.ErrTokenNotFound) {
			uc.logger.Warn("BookAppointment: token not found")
			return ErrTokenNotFound
		}
		uc.logger.Error("BookAppointment: failed to read token: %v", err)
		return fmt.Errorf("%w: failed to read token: %v", ErrInternal, err)
	}

	if err := uc.checkTokenState(token, now); err != nil {
		return err
	}

	// Токен стал валидным между UPDATE и SELECT: такого быть не должно
	uc.logger.Error("BookAppointment: token id=%d is valid but was not consumed", token.ID)
	return fmt.Errorf("%w: token state changed concurrently", ErrInternal)
}

func (uc *UseCase) checkTokenState(token *domain.BookingToken, now time.Time) error {
	switch token.State(now) {
	case domain.TokenStateUsed:
		uc.logger.Warn("BookAppointment: token id=%d already used", token.ID)
		return ErrTokenUsed
	case domain.TokenStateExpired:
		uc.logger.Warn("BookAppointment: token id=%d expired at %s", token.ID, token.ExpiresAt.Format(time.RFC3339))
		return ErrTokenExpired
	default:
		return nil
	}
}

func (uc *UseCase) title(ctx context.Context, token *domain.BookingToken) string {
	base := defaultTitle
	if token.AppointmentTypeID != nil {
		t, err := uc.types.GetByID(ctx, *token.AppointmentTypeID)
		if err != nil {
			uc.logger.Warn("BookAppointment: appointment type id=%d unavailable, using default title: %v",
				*token.AppointmentTypeID, err)
		} else {
			base = t.Name
		}
	}
	return fmt.Sprintf("%s: %s", base, token.ContactName)
}

// createCalendarEvent создаёт событие в основном Google-календаре администратора
func (uc *UseCase) createCalendarEvent(ctx context.Context, userID int64, a *domain.Appointment) {
	if uc.events == nil {
		return
	}

	calendars, err := uc.calendars.ListByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to list calendars for event: %v", err)
		uc.metrics.IncSideEffectFailure("calendar_event")
		return
	}

	var primary *domain.Calendar
	for _, c := range calendars {
		if c.IsPrimary && c.Provider == domain.CalendarProviderGoogle {
			primary = c
			break
		}
	}
	if primary == nil {
		uc.logger.Info("BookAppointment: no primary Google calendar, event not created")
		return
	}

	in := googlecalendar.EventInput{
		Summary:       a.Title,
		Start:         a.StartTime,
		End:           a.EndTime,
		AttendeeEmail: a.ContactEmail,
	}
	if a.Notes != nil {
		in.Description = *a.Notes
	}

	eventID, err := uc.events.CreateEvent(ctx, primary.ExternalID, in)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to create calendar event for appointment id=%d: %v", a.ID, err)
		uc.metrics.IncSideEffectFailure("calendar_event")
		return
	}

	if err := uc.appointments.SetCalendarEventID(ctx, a.ID, eventID); err != nil {
		uc.logger.Error("BookAppointment: failed to store event id for appointment id=%d: %v", a.ID, err)
		uc.metrics.IncSideEffectFailure("calendar_event_id")
		return
	}
	a.CalendarEventID = ptr.Ptr(eventID)
}

func (uc *UseCase) sendConfirmation(ctx context.Context, admin *domain.User, a *domain.Appointment) {
	if uc.mail == nil {
		return
	}

	c := mailer.Confirmation{
		ToName:    a.ContactName,
		ToEmail:   a.ContactEmail,
		Title:     a.Title,
		Start:     a.StartTime,
		End:       a.EndTime,
		Organizer: admin.Email,
	}
	if a.Notes != nil {
		c.Notes = *a.Notes
	}

	err := uc.mail.SendConfirmation(ctx, c)
	switch {
	case err == nil:
		uc.logger.Info("BookAppointment: confirmation sent for appointment id=%d", a.ID)
	case errors.Is(err, mailer.ErrDisabled):
		uc.logger.Info("BookAppointment: mail disabled, confirmation skipped")
	default:
		uc.logger.Error("BookAppointment: failed to send confirmation for appointment id=%d: %v", a.ID, err)
		uc.metrics.IncSideEffectFailure("confirmation_email")
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return "token_not_found"
	case errors.Is(err, ErrTokenUsed):
		return "token_used"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrAdminUnavailable):
		return "admin_unavailable"
	default:
		return "internal"
	}
}
