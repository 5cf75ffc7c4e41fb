package icalfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/logger"
)

const feed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:site-visit\r\n" +
	"DTSTAMP:20260301T000000Z\r\n" +
	"DTSTART:20260310T100000Z\r\n" +
	"DTEND:20260310T110000Z\r\n" +
	"SUMMARY:Site visit\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:reminder\r\n" +
	"DTSTAMP:20260301T000000Z\r\n" +
	"DTSTART:20260310T140000Z\r\n" +
	"DTEND:20260310T150000Z\r\n" +
	"TRANSP:TRANSPARENT\r\n" +
	"SUMMARY:Reminder\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:cancelled\r\n" +
	"DTSTAMP:20260301T000000Z\r\n" +
	"DTSTART:20260311T090000Z\r\n" +
	"DTEND:20260311T100000Z\r\n" +
	"STATUS:CANCELLED\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly-jour-fixe\r\n" +
	"DTSTAMP:20260301T000000Z\r\n" +
	"DTSTART:20260302T080000Z\r\n" +
	"DTEND:20260302T083000Z\r\n" +
	"RRULE:FREQ=WEEKLY;COUNT=10\r\n" +
	"SUMMARY:Jour fixe\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseBusy(t *testing.T) {
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	busy, err := ParseBusy(strings.NewReader(feed), from, to, time.UTC)
	require.NoError(t, err)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Count:   10,
		Dtstart: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	weekly := rule.Between(from, to, true)
	require.Len(t, weekly, 1)

	expected := []domain.BusyInterval{
		{Start: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), End: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)},
		{Start: weekly[0], End: weekly[0].Add(30 * time.Minute)},
	}

	require.Len(t, busy, len(expected))
	for i := range expected {
		assert.True(t, expected[i].Start.Equal(busy[i].Start), "start #%d: %s", i, busy[i].Start)
		assert.True(t, expected[i].End.Equal(busy[i].End), "end #%d: %s", i, busy[i].End)
	}
}

func TestParseBusy_EventOutsideWindowIgnored(t *testing.T) {
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	busy, err := ParseBusy(strings.NewReader(feed), from, to, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, busy)
}

func TestParseBusy_InvalidFeed(t *testing.T) {
	_, err := ParseBusy(strings.NewReader(""), time.Now(), time.Now().Add(time.Hour), time.UTC)
	assert.ErrorIs(t, err, ErrInvalidFeed)
}

func TestClient_FetchBusy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendar.ics" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	client := NewClient(time.Second, time.UTC, logger.NewNop())
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	busy, err := client.FetchBusy(context.Background(), srv.URL+"/calendar.ics", from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, busy, 1)

	assert.NoError(t, client.Ping(context.Background(), srv.URL+"/calendar.ics"))

	_, err = client.FetchBusy(context.Background(), srv.URL+"/missing.ics", from, from.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrUnavailable)
}
