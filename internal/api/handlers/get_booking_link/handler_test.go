package get_booking_link

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getBookingLink "github.com/archportal/booking-service/internal/usecase/get_booking_link"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/ptr"
)

type fakeUseCase struct {
	token string
	resp  *getBookingLink.Response
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getBookingLink.Request) (*getBookingLink.Response, error) {
	f.token = req.Token
	return f.resp, f.err
}

func serve(uc *fakeUseCase) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/booking-links/{token}", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/booking-links/3f2a9c", nil))
	return rec
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{resp: &getBookingLink.Response{
		ContactName:       "Anna Schmidt",
		AppointmentTypeID: ptr.Ptr(int64(2)),
		AppointmentType:   ptr.Ptr("Site visit"),
		DurationMinutes:   120,
		ExpiresAt:         time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC),
	}}

	rec := serve(uc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3f2a9c", uc.token)

	var body BookingLinkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Site visit", *body.AppointmentType)
	assert.Equal(t, 120, body.DurationMinutes)
	assert.Equal(t, "2026-03-13T09:00:00Z", body.ExpiresAt)
}

func TestHandle_TokenStates(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(&fakeUseCase{err: getBookingLink.ErrTokenNotFound}).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{err: getBookingLink.ErrTokenUsed}).Code)
	assert.Equal(t, http.StatusGone, serve(&fakeUseCase{err: getBookingLink.ErrTokenExpired}).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: getBookingLink.ErrInternal}).Code)
}
