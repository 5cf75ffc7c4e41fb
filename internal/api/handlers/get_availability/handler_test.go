package get_availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	getAvailability "github.com/archportal/booking-service/internal/usecase/get_availability"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/ptr"
)

type fakeUseCase struct {
	req  *getAvailability.Request
	resp *getAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.req = req
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	uc := &fakeUseCase{resp: &getAvailability.Response{
		Slots: []domain.CandidateSlot{
			{Start: start, End: start.Add(time.Hour), Available: true},
			{Start: start.Add(15 * time.Minute), End: start.Add(75 * time.Minute), Available: false},
		},
		Warning: ptr.Ptr("Calendar is temporarily unavailable; showing demo availability"),
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?start=2026-03-10&end=2026-03-11&duration=60&appointmentTypeId=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-03-10", uc.req.StartDate)
	assert.Equal(t, "2026-03-11", uc.req.EndDate)
	assert.Equal(t, 60, uc.req.DurationMinutes)
	assert.Equal(t, int64(3), *uc.req.AppointmentTypeID)

	var body AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Slots, 2)
	assert.Equal(t, SlotResponse{Start: "2026-03-10T09:00:00+01:00", End: "2026-03-10T10:00:00+01:00", Available: true}, body.Slots[0])
	assert.False(t, body.Slots[1].Available)
	require.NotNil(t, body.Warning)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{name: "missing end", query: "start=2026-03-10", want: http.StatusBadRequest},
		{name: "bad duration", query: "start=2026-03-10&end=2026-03-10&duration=abc", want: http.StatusBadRequest},
		{name: "bad type id", query: "start=2026-03-10&end=2026-03-10&appointmentTypeId=x", want: http.StatusBadRequest},
		{name: "invalid input", query: "start=2026-03-10&end=2026-03-10", err: fmt.Errorf("%w: end must not be before start", getAvailability.ErrInvalidInput), want: http.StatusBadRequest},
		{name: "range too large", query: "start=2026-03-10&end=2026-03-10", err: getAvailability.ErrRangeTooLarge, want: http.StatusBadRequest},
		{name: "unknown type", query: "start=2026-03-10&end=2026-03-10", err: getAvailability.ErrAppointmentTypeNotFound, want: http.StatusNotFound},
		{name: "no admin", query: "start=2026-03-10&end=2026-03-10", err: getAvailability.ErrAdminUnavailable, want: http.StatusServiceUnavailable},
		{name: "internal", query: "start=2026-03-10&end=2026-03-10", err: getAvailability.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+tt.query, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
