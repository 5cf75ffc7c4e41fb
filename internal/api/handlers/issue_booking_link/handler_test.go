package issue_booking_link

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/api/handlers"
	"github.com/archportal/booking-service/internal/api/middleware"
	issueBookingLink "github.com/archportal/booking-service/internal/usecase/issue_booking_link"
	"github.com/archportal/booking-service/pkg/logger"
)

type fakeUseCase struct {
	req *issueBookingLink.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *issueBookingLink.Request) (*issueBookingLink.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &issueBookingLink.Response{
		Token:     "abc123",
		URL:       "https://example.com/book?token=abc123",
		ExpiresAt: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC),
		EmailSent: req.SendEmail,
	}, nil
}

func request(body string, withUser bool) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/booking-links", strings.NewReader(body))
	if withUser {
		r = r.WithContext(middleware.WithUserID(r.Context(), 1))
	}
	return r
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, request(
		`{"contactName":"Anna Schmidt","contactEmail":"anna@example.com","appointmentTypeId":2,"sendEmail":true}`, true))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(1), uc.req.CreatedBy)
	require.NotNil(t, uc.req.AppointmentTypeID)
	assert.Equal(t, int64(2), *uc.req.AppointmentTypeID)
	assert.Nil(t, uc.req.ExpiresInHours)

	var body BookingLinkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "abc123", body.Token)
	assert.Equal(t, "2026-03-13T09:00:00Z", body.ExpiresAt)
	assert.True(t, body.EmailSent)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		withUser bool
		err      error
		want     int
		wantMsg  string
	}{
		{name: "no user", body: `{}`, want: http.StatusUnauthorized, wantMsg: msgMissingUserID},
		{name: "malformed", body: `{"contactName":`, withUser: true, want: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{
			name:     "invalid email",
			body:     `{"contactName":"Anna","contactEmail":"nope"}`,
			withUser: true,
			err:      fmt.Errorf("%w: invalid contact email", issueBookingLink.ErrInvalidInput),
			want:     http.StatusBadRequest,
			wantMsg:  "invalid contact email",
		},
		{
			name:     "unknown type",
			body:     `{"contactName":"Anna","contactEmail":"anna@example.com","appointmentTypeId":9}`,
			withUser: true,
			err:      issueBookingLink.ErrAppointmentTypeNotFound,
			want:     http.StatusNotFound,
			wantMsg:  msgTypeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()).Handle(rec, request(tt.body, tt.withUser))

			assert.Equal(t, tt.want, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}
