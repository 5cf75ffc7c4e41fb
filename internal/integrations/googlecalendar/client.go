package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/archportal/booking-service/internal/domain"
)

// Client клиент Google Calendar API
type Client struct {
	svc     *calendar.Service
	timeout time.Duration
	log     Logger
}

// NewService создает сервис Google Calendar по файлу сервисного аккаунта
func NewService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*calendar.Service, error) {
	opts = append([]option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarScope),
	}, opts...)

	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create service: %v", ErrUnavailable, err)
	}
	return svc, nil
}

// NewClient создает новый экземпляр клиента
func NewClient(svc *calendar.Service, timeout time.Duration, log Logger) *Client {
	return &Client{
		svc:     svc,
		timeout: timeout,
		log:     log,
	}
}

// FetchBusy запрашивает free/busy для календаря в окне [from, to)
func (c *Client) FetchBusy(ctx context.Context, calendarID string, from, to time.Time) ([]domain.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}

	resp, err := c.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, c.wrapError("FetchBusy", err)
	}

	cal, ok := resp.Calendars[calendarID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing in free/busy response", ErrInvalidResponse, calendarID)
	}
	if len(cal.Errors) > 0 {
		// notFound приходит как ошибка внутри ответа, а не HTTP статус
		if cal.Errors[0].Reason == "notFound" {
			return nil, ErrCalendarNotFound
		}
		return nil, fmt.Errorf("%w: %s/%s", ErrUnavailable, cal.Errors[0].Domain, cal.Errors[0].Reason)
	}

	busy := make([]domain.BusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: busy start %q: %v", ErrInvalidResponse, period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("%w: busy end %q: %v", ErrInvalidResponse, period.End, err)
		}
		busy = append(busy, domain.BusyInterval{Start: start, End: end})
	}

	c.log.Info("Fetched %d busy periods from Google calendar", len(busy))
	return busy, nil
}

// EventInput данные события о записи
type EventInput struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
}

// CreateEvent создает событие и возвращает его идентификатор
func (c *Client) CreateEvent(ctx context.Context, calendarID string, in EventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event := &calendar.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       &calendar.EventDateTime{DateTime: in.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: in.End.Format(time.RFC3339)},
	}
	if in.AttendeeEmail != "" {
		event.Attendees = []*calendar.EventAttendee{{Email: in.AttendeeEmail}}
	}

	created, err := c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", c.wrapError("CreateEvent", err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("%w: created event has no id", ErrInvalidResponse)
	}

	return created.Id, nil
}

// Ping проверяет доступ к календарю
func (c *Client) Ping(ctx context.Context, calendarID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.svc.Calendars.Get(calendarID).Context(ctx).Do(); err != nil {
		return c.wrapError("Ping", err)
	}
	return nil
}

func (c *Client) wrapError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return ErrCalendarNotFound
	}
	c.log.Warn("Google Calendar %s failed: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
