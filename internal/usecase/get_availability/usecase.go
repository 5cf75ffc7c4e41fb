package get_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/archportal/booking-service/internal/domain"
	typeRepo "github.com/archportal/booking-service/internal/infra/storage/appointmenttype"
	userRepo "github.com/archportal/booking-service/internal/infra/storage/user"
)

const (
	fallbackNoCalendar     = "no_calendar"
	fallbackPrimaryFailure = "primary_unavailable"
)

// UseCase use case для расчёта свободных слотов на период
type UseCase struct {
	users        UserRepository
	hours        WorkingHoursResolver
	calendars    CalendarRepository
	appointments AppointmentRepository
	types        AppointmentTypeRepository
	sources      map[domain.CalendarProvider]BusySource
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	users UserRepository,
	hours WorkingHoursResolver,
	calendars CalendarRepository,
	appointments AppointmentRepository,
	types AppointmentTypeRepository,
	sources map[domain.CalendarProvider]BusySource,
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
	if opts.DefaultDurationMinutes <= 0 {
		opts.DefaultDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if opts.MaxRangeDays <= 0 {
		opts.MaxRangeDays = domain.DefaultMaxRangeDays
	}

	return &UseCase{
		users:        users,
		hours:        hours,
		calendars:    calendars,
		appointments: appointments,
		types:        types,
		sources:      sources,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: start=%s, end=%s, duration=%d", req.StartDate, req.EndDate, req.DurationMinutes)

	// 1. Валидация периода
	startDay, endDay, err := parseDateRange(req, uc.opts.Location, uc.opts.MaxRangeDays)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем длительность слота
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Чьё расписание показываем
	admin, err := uc.users.GetAdmin(ctx)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Error("GetAvailability: no admin user configured")
			return nil, ErrAdminUnavailable
		}
		uc.logger.Error("GetAvailability: failed to get admin user: %v", err)
		return nil, fmt.Errorf("%w: failed to get admin user: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 4. Генерируем слоты по рабочим часам
	hours := uc.hours.Resolve(ctx, admin.ID)
	slots := domain.GenerateSlots(hours, startDay, endDay, duration, uc.opts.StepMinutes, now)

	// 5. Собираем занятость: внешние календари и записи бюро
	windowFrom := startDay
	windowTo := endDay.AddDate(0, 0, 1)

	busy, demo, warnings := uc.collectCalendarBusy(ctx, admin.ID, windowFrom, windowTo)

	booked, err := uc.appointments.List(ctx, domain.AppointmentFilter{
		UserID:     &admin.ID,
		From:       &windowFrom,
		To:         &windowTo,
		OnlyActive: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}
	for _, a := range booked {
		busy = append(busy, a.AsBusyInterval())
	}

	// 6. Помечаем занятые слоты
	markBusy(slots, busy)
	if demo {
		markDemoBusy(slots, uc.opts.Location)
	}

	uc.metrics.AddSlotsGenerated(len(slots))
	uc.logger.Info("GetAvailability: generated %d slots, %d busy intervals, demo=%t", len(slots), len(busy), demo)

	resp := &Response{Slots: slots}
	if len(warnings) > 0 {
		w := strings.Join(warnings, "; ")
		resp.Warning = &w
	}

	return resp, nil
}

func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	duration := uc.opts.DefaultDurationMinutes

	if req.AppointmentTypeID != nil {
		t, err := uc.types.GetByID(ctx, *req.AppointmentTypeID)
		if err != nil {
			if errors.Is(err, typeRepo.ErrAppointmentTypeNotFound) {
				uc.logger.Warn("GetAvailability: appointment type id=%d not found", *req.AppointmentTypeID)
				return 0, ErrAppointmentTypeNotFound
			}
			uc.logger.Error("GetAvailability: failed to get appointment type id=%d: %v", *req.AppointmentTypeID, err)
			return 0, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
		}
		duration = t.DurationMinutes
	}

	if req.DurationMinutes != 0 {
		duration = req.DurationMinutes
	}

	if err := validateDuration(duration); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return 0, err
	}

	return duration, nil
}

// collectCalendarBusy объединяет занятость всех блокирующих календарей.
// Сбой основного календаря переводит ответ в демо-режим, сбой остальных пропускается с предупреждением
func (uc *UseCase) collectCalendarBusy(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) ([]domain.BusyInterval, bool, []string) {
	busy := make([]domain.BusyInterval, 0)
	warnings := make([]string, 0)

	calendars, err := uc.calendars.ListByUserID(ctx, userID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list calendars: %v", err)
		uc.metrics.IncCalendarFallback(fallbackPrimaryFailure)
		return busy, true, append(warnings, "Calendar could not be loaded; showing demo availability")
	}

	blocking := make([]*domain.Calendar, 0, len(calendars))
	for _, c := range calendars {
		if c.IsBlocking() {
			blocking = append(blocking, c)
		}
	}

	if len(blocking) == 0 {
		if uc.opts.DemoFallback {
			uc.logger.Warn("GetAvailability: no blocking calendar connected, using demo availability")
			uc.metrics.IncCalendarFallback(fallbackNoCalendar)
			return busy, true, append(warnings, "No calendar connected; showing demo availability")
		}
		return busy, false, warnings
	}

	primaryID := blocking[0].ID
	for _, c := range blocking {
		if c.IsPrimary {
			primaryID = c.ID
			break
		}
	}

	for _, c := range blocking {
		intervals, err := uc.fetchCalendar(ctx, c, from, to)
		if err == nil {
			busy = append(busy, intervals...)
			continue
		}

		if c.ID == primaryID {
			uc.logger.Error("GetAvailability: primary calendar id=%d unavailable: %v", c.ID, err)
			uc.metrics.IncCalendarFallback(fallbackPrimaryFailure)
			return make([]domain.BusyInterval, 0), true,
				[]string{"Calendar is temporarily unavailable; showing demo availability"}
		}

		uc.logger.Warn("GetAvailability: calendar id=%d unavailable, skipping: %v", c.ID, err)
		warnings = append(warnings, fmt.Sprintf("Calendar %q is unavailable and was skipped", c.Name))
	}

	return busy, false, warnings
}

func (uc *UseCase) fetchCalendar(ctx context.Context, c *domain.Calendar, from, to time.Time) ([]domain.BusyInterval, error) {
	source, ok := uc.sources[c.Provider]
	if !ok || source == nil {
		return nil, fmt.Errorf("provider %q is not configured", c.Provider)
	}
	return source.FetchBusy(ctx, c.ExternalID, from, to)
}
