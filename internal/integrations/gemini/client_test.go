package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/pkg/logger"
)

type fakeModel struct {
	text  string
	err   error
	parts []genai.Part
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(f.text)}},
		}},
	}, nil
}

func newTestClient(model generator) *Client {
	return &Client{model: model, timeout: time.Second, log: logger.NewNop()}
}

func TestExtractReceipt(t *testing.T) {
	model := &fakeModel{text: "```json\n{\"merchant\":\"Bauhaus\",\"date\":\"2026-03-02\",\"total\":42.5,\"currency\":\"eur\",\"vatAmount\":6.79}\n```"}
	client := newTestClient(model)

	data, err := client.ExtractReceipt(context.Background(), "image/jpeg", []byte{0xff, 0xd8})
	require.NoError(t, err)

	assert.Equal(t, "Bauhaus", data.Merchant)
	assert.Equal(t, "2026-03-02", data.Date)
	assert.InDelta(t, 42.5, data.Total, 0.001)
	assert.Equal(t, "EUR", data.Currency)
	require.NotNil(t, data.VATAmount)
	assert.InDelta(t, 6.79, *data.VATAmount, 0.001)

	require.Len(t, model.parts, 2)
	blob, ok := model.parts[0].(genai.Blob)
	require.True(t, ok)
	assert.Equal(t, "image/jpeg", blob.MIMEType)
}

func TestExtractReceipt_Errors(t *testing.T) {
	_, err := newTestClient(&fakeModel{err: errors.New("quota exceeded")}).
		ExtractReceipt(context.Background(), "image/png", []byte("x"))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = newTestClient(&fakeModel{text: "I cannot read this receipt"}).
		ExtractReceipt(context.Background(), "image/png", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = newTestClient(&fakeModel{text: `{"merchant":"","date":"2026-03-02","total":1}`}).
		ExtractReceipt(context.Background(), "image/png", []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestExtractReceipt_RejectsValuesThatDoNotFitStorage(t *testing.T) {
	longMerchant := strings.Repeat("Ä", 256)

	tests := []struct {
		name string
		text string
	}{
		{name: "four letter currency", text: `{"merchant":"Bauhaus","date":"2026-03-02","total":42.5,"currency":"EURO"}`},
		{name: "currency symbol", text: `{"merchant":"Bauhaus","date":"2026-03-02","total":42.5,"currency":"€"}`},
		{name: "merchant too long", text: `{"merchant":"` + longMerchant + `","date":"2026-03-02","total":42.5,"currency":"EUR"}`},
		{name: "total too large", text: `{"merchant":"Bauhaus","date":"2026-03-02","total":1e12,"currency":"EUR"}`},
		{name: "vat too large", text: `{"merchant":"Bauhaus","date":"2026-03-02","total":42.5,"currency":"EUR","vatAmount":1e11}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestClient(&fakeModel{text: tt.text}).
				ExtractReceipt(context.Background(), "image/png", []byte("x"))
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestExtractReceipt_Normalizes(t *testing.T) {
	merchant := strings.Repeat("Ä", 255)
	model := &fakeModel{text: `{"merchant":"  ` + merchant + ` ","date":"2026-03-02","total":-9999999999.99,"currency":""}`}

	data, err := newTestClient(model).ExtractReceipt(context.Background(), "image/png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, merchant, data.Merchant)
	assert.Equal(t, "EUR", data.Currency)
	assert.InDelta(t, -9999999999.99, data.Total, 0.001)
}
