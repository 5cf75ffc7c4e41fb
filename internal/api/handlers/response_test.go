package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondGone(rec, "booking link has expired")

	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Code: 410, Message: "booking link has expired"}, body)
}

func TestRespondJSON_NilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Token string `json:"token"`
	}

	var p payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"abc"}`))
	require.NoError(t, DecodeJSON(r, &p))
	assert.Equal(t, "abc", p.Token)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"abc","admin":true}`))
	assert.Error(t, DecodeJSON(r, &p))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"token":"abc"}{"token":"def"}`))
	assert.Error(t, DecodeJSON(r, &p))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(r, &p))
}

func TestDetail(t *testing.T) {
	sentinel := errors.New("book_appointment: invalid input data")

	assert.Equal(t, "malformed dates", Detail(fmt.Errorf("%w: malformed dates", sentinel), sentinel))
	assert.Equal(t, sentinel.Error(), Detail(sentinel, sentinel))
	assert.Equal(t, sentinel.Error(), Detail(errors.New("other"), sentinel))
}
