package delete_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/service/calendars"
	"github.com/archportal/booking-service/pkg/logger"
)

type fakeService struct {
	id, userID int64
	err        error
}

func (f *fakeService) Delete(_ context.Context, id int64, userID int64) error {
	f.id, f.userID = id, userID
	return f.err
}

func request(id string, withUser bool) *http.Request {
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/calendars/"+id, nil)
	r = mux.SetURLVars(r, map[string]string{"calendarId": id})
	if withUser {
		r = r.WithContext(middleware.WithUserID(r.Context(), 3))
	}
	return r
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		withUser bool
		err      error
		want     int
	}{
		{name: "deleted", id: "8", withUser: true, want: http.StatusNoContent},
		{name: "bad id", id: "x", withUser: true, want: http.StatusBadRequest},
		{name: "no user", id: "8", want: http.StatusUnauthorized},
		{name: "not found", id: "8", withUser: true, err: calendars.ErrCalendarNotFound, want: http.StatusNotFound},
		{name: "foreign", id: "8", withUser: true, err: calendars.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", id: "8", withUser: true, err: calendars.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(rec, request(tt.id, tt.withUser))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, int64(8), svc.id)
				assert.Equal(t, int64(3), svc.userID)
				assert.Zero(t, rec.Body.Len())
			}
		})
	}
}
