package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/service/appointments"
	"github.com/archportal/booking-service/internal/service/appointments/models"
	"github.com/archportal/booking-service/pkg/logger"
)

type fakeService struct {
	id, userID int64
	err        error
}

func (f *fakeService) Cancel(_ context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	f.id, f.userID = id, userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled"}, nil
}

func request(id string, withUser bool) *http.Request {
	r := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/cancel", nil)
	r = mux.SetURLVars(r, map[string]string{"appointmentId": id})
	if withUser {
		r = r.WithContext(middleware.WithUserID(r.Context(), 1))
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
		{name: "cancelled", id: "12", withUser: true, want: http.StatusOK},
		{name: "bad id", id: "abc", withUser: true, want: http.StatusBadRequest},
		{name: "no user", id: "12", want: http.StatusUnauthorized},
		{name: "not found", id: "12", withUser: true, err: appointments.ErrAppointmentNotFound, want: http.StatusNotFound},
		{name: "foreign", id: "12", withUser: true, err: appointments.ErrAccessDenied, want: http.StatusForbidden},
		{name: "already cancelled", id: "12", withUser: true, err: appointments.ErrCannotCancel, want: http.StatusConflict},
		{name: "internal", id: "12", withUser: true, err: appointments.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, request(tt.id, tt.withUser))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, int64(12), svc.id)
				assert.Equal(t, int64(1), svc.userID)
			}
		})
	}
}
