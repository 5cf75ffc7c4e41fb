package googlecalendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/archportal/booking-service/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := calendar.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	return NewClient(svc, time.Second, logger.NewNop())
}

func TestFetchBusy(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "freeBusy"))

		var req calendar.FreeBusyRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.Len(t, req.Items, 1) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"kind": "calendar#freeBusy",
			"calendars": map[string]interface{}{
				req.Items[0].Id: map[string]interface{}{
					"busy": []map[string]string{
						{"start": "2026-03-10T10:00:00Z", "end": "2026-03-10T11:00:00Z"},
					},
				},
			},
		})
	})

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	busy, err := client.FetchBusy(context.Background(), "office@example.com", from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.True(t, busy[0].Start.Equal(time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)))
	assert.True(t, busy[0].End.Equal(time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)))
}

func TestFetchBusy_CalendarError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"calendars": map[string]interface{}{
				"office@example.com": map[string]interface{}{
					"errors": []map[string]string{{"domain": "global", "reason": "notFound"}},
				},
			},
		})
	})

	_, err := client.FetchBusy(context.Background(), "office@example.com", time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}

func TestFetchBusy_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchBusy(context.Background(), "office@example.com", time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateEvent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var ev calendar.Event
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "Consultation: Anna Schmidt", ev.Summary)
		if assert.Len(t, ev.Attendees, 1) {
			assert.Equal(t, "anna@example.com", ev.Attendees[0].Email)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "evt-1"})
	})

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	id, err := client.CreateEvent(context.Background(), "office@example.com", EventInput{
		Summary:       "Consultation: Anna Schmidt",
		Start:         start,
		End:           start.Add(time.Hour),
		AttendeeEmail: "anna@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", id)
}

func TestPing_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not Found"}}`))
	})

	err := client.Ping(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, ErrCalendarNotFound)
}
