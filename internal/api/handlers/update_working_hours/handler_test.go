package update_working_hours

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/api/middleware"
	"github.com/archportal/booking-service/internal/service/workinghours"
	"github.com/archportal/booking-service/internal/service/workinghours/models"
	"github.com/archportal/booking-service/pkg/logger"
)

type fakeService struct {
	req *models.UpdateWorkingHoursRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.WorkingHoursResponse{Hours: req.Hours}, nil
}

func send(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/working-hours", strings.NewReader(body))
	r = r.WithContext(middleware.WithUserID(r.Context(), 3))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := send(h, `{"hours":{"monday":[{"start":"09:00","end":"12:00"}],"saturday":[]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.req.UserID)
	require.Len(t, svc.req.Hours.Monday, 1)
	assert.Equal(t, 9*60, svc.req.Hours.Monday[0].Start.Minutes())
	assert.Contains(t, rec.Body.String(), `"start":"09:00"`)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeService{}, logger.NewNop())
	assert.Equal(t, http.StatusBadRequest, send(h, `{"hours":{"monday":[{"start":"9am","end":"12:00"}]}}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(h, `{"monday":[]}`).Code)

	h = NewHandler(&fakeService{err: fmt.Errorf("%w: ranges overlap", workinghours.ErrInvalidInput)}, logger.NewNop())
	rec := send(h, `{"hours":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ranges overlap")

	h = NewHandler(&fakeService{err: workinghours.ErrInternal}, logger.NewNop())
	assert.Equal(t, http.StatusInternalServerError, send(h, `{"hours":{}}`).Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/working-hours", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
