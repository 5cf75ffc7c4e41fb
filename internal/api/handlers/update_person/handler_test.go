package update_person

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/api/handlers"
	updatePerson "github.com/archportal/booking-service/internal/usecase/update_person"
	"github.com/archportal/booking-service/pkg/logger"
)

type fakeUseCase struct {
	req *updatePerson.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *updatePerson.Request) (*updatePerson.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	p := req.Person
	p.CreatedAt = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return &updatePerson.Response{Person: &p}, nil
}

func serve(uc *fakeUseCase, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/persons/{personId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rec
}

const validBody = `{
	"firstName": "Anna",
	"lastName": "Schmidt",
	"emails": [{"email": "anna@example.com", "label": "work", "isPrimary": true}],
	"phones": [{"number": "+49 30 123456", "label": "mobile", "isPrimary": true}],
	"addresses": []
}`

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/v1/persons/7", validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.req)
	assert.Equal(t, int64(7), uc.req.Person.ID)
	require.Len(t, uc.req.Person.Phones, 1)
	assert.Equal(t, "+49 30 123456", uc.req.Person.Phones[0].Phone)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "Anna", body["firstName"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "bad id",
			path:       "/api/v1/persons/abc",
			body:       validBody,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidPersonID,
		},
		{
			name:       "unknown field",
			path:       "/api/v1/persons/7",
			body:       `{"firstName":"Anna","age":30}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidRequestBody,
		},
		{
			name:       "validation",
			path:       "/api/v1/persons/7",
			body:       validBody,
			err:        fmt.Errorf("%w: first name is required", updatePerson.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "first name is required",
		},
		{
			name:       "not found",
			path:       "/api/v1/persons/7",
			body:       validBody,
			err:        updatePerson.ErrPersonNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    msgNotFound,
		},
		{
			name:       "duplicate",
			path:       "/api/v1/persons/7",
			body:       validBody,
			err:        updatePerson.ErrDuplicateContact,
			wantStatus: http.StatusConflict,
			wantMsg:    msgDuplicateContact,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}
