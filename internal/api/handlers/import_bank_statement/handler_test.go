package import_bank_statement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/service/banking"
	"github.com/archportal/booking-service/internal/service/banking/models"
	"github.com/archportal/booking-service/pkg/logger"
)

type fakeService struct {
	content string
	err     error
}

func (f *fakeService) ImportStatement(_ context.Context, r io.Reader) (*models.ImportResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.content = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &models.ImportResponse{Imported: 2, Skipped: 1, Errors: []string{}}, nil
}

const statement = "date,amount,currency,counterparty,reference\n2026-03-02,-42.50,EUR,Bauhaus,R-1\n"

func TestHandle_RawBody(t *testing.T) {
	svc := &fakeService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bank-statements", strings.NewReader(statement))
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, statement, svc.content)

	var resp models.ImportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
}

func TestHandle_Multipart(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(formField, "march.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(statement))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	svc := &fakeService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bank-statements", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, statement, svc.content)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid csv", err: fmt.Errorf("%w: bare quote", banking.ErrInvalidStatement), wantStatus: http.StatusBadRequest},
		{name: "storage", err: banking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/bank-statements", strings.NewReader(statement))
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
