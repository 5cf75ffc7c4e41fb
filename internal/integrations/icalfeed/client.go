package icalfeed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/archportal/booking-service/internal/domain"
)

const maxFeedSize = 5 << 20

// Client клиент для чтения календарей в формате iCalendar по URL (Nextcloud, iCloud, Outlook)
type Client struct {
	httpClient *http.Client
	loc        *time.Location
	log        Logger
}

// NewClient создает новый экземпляр клиента.
// loc используется для событий без указания часового пояса (floating time)
func NewClient(timeout time.Duration, loc *time.Location, log Logger) *Client {
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		loc: loc,
		log: log,
	}
}

// FetchBusy загружает фид и возвращает занятые интервалы, пересекающиеся с [from, to)
func (c *Client) FetchBusy(ctx context.Context, feedURL string, from, to time.Time) ([]domain.BusyInterval, error) {
	body, err := c.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	busy, err := ParseBusy(body, from, to, c.loc)
	if err != nil {
		return nil, err
	}

	c.log.Info("Fetched %d busy intervals from iCalendar feed", len(busy))
	return busy, nil
}

// Ping проверяет, что фид доступен и содержит iCalendar
func (c *Client) Ping(ctx context.Context, feedURL string) error {
	body, err := c.fetch(ctx, feedURL)
	if err != nil {
		return err
	}
	defer body.Close()

	if _, err := ical.NewDecoder(io.LimitReader(body, maxFeedSize)).Decode(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	url := normalizeURL(feedURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrUnavailable, resp.StatusCode)
	}

	return resp.Body, nil
}

// ParseBusy разбирает iCalendar документ и возвращает занятые интервалы в окне [from, to).
// Повторяющиеся события раскрываются по RRULE/RDATE/EXDATE.
// Прозрачные (TRANSP:TRANSPARENT) и отменённые события время не занимают
func ParseBusy(r io.Reader, from, to time.Time, loc *time.Location) ([]domain.BusyInterval, error) {
	dec := ical.NewDecoder(io.LimitReader(r, maxFeedSize))

	busy := make([]domain.BusyInterval, 0)
	decoded := 0
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
		}
		decoded++

		for _, event := range cal.Events() {
			if !blocksTime(event) {
				continue
			}

			intervals, err := eventIntervals(event, from, to, loc)
			if err != nil {
				// Одно битое событие не должно ломать весь календарь
				continue
			}
			busy = append(busy, intervals...)
		}
	}

	if decoded == 0 {
		return nil, fmt.Errorf("%w: no VCALENDAR found", ErrInvalidFeed)
	}

	return busy, nil
}

func blocksTime(event ical.Event) bool {
	if p := event.Props.Get(ical.PropTransparency); p != nil && strings.EqualFold(p.Value, "TRANSPARENT") {
		return false
	}
	if p := event.Props.Get(ical.PropStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		return false
	}
	return true
}

func eventIntervals(event ical.Event, from, to time.Time, loc *time.Location) ([]domain.BusyInterval, error) {
	start, err := event.DateTimeStart(loc)
	if err != nil {
		return nil, err
	}

	end, err := event.DateTimeEnd(loc)
	if err != nil || !end.After(start) {
		end = defaultEnd(event, start)
	}
	duration := end.Sub(start)

	set, err := event.RecurrenceSet(loc)
	if err != nil {
		return nil, err
	}

	if set == nil {
		interval := domain.BusyInterval{Start: start, End: end}
		if interval.Overlaps(from, to) {
			return []domain.BusyInterval{interval}, nil
		}
		return nil, nil
	}

	return occurrencesIn(set, duration, from, to), nil
}

// occurrencesIn раскрывает повторения в окне. Вхождение, начавшееся до from, может ещё длиться внутри окна
func occurrencesIn(set *rrule.Set, duration time.Duration, from, to time.Time) []domain.BusyInterval {
	occurrences := set.Between(from.Add(-duration), to, true)
	intervals := make([]domain.BusyInterval, 0, len(occurrences))
	for _, occ := range occurrences {
		interval := domain.BusyInterval{Start: occ, End: occ.Add(duration)}
		if interval.Overlaps(from, to) {
			intervals = append(intervals, interval)
		}
	}
	return intervals
}

// defaultEnd событие на весь день без DTEND длится сутки, событие со временем считается мгновенным
func defaultEnd(event ical.Event, start time.Time) time.Time {
	if p := event.Props.Get(ical.PropDateTimeStart); p != nil && p.ValueType() == ical.ValueDate {
		return start.AddDate(0, 0, 1)
	}
	return start
}

func normalizeURL(feedURL string) string {
	if strings.HasPrefix(feedURL, "webcal://") {
		return "https://" + strings.TrimPrefix(feedURL, "webcal://")
	}
	return feedURL
}
