package extract_receipt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	txRepo "github.com/archportal/booking-service/internal/infra/storage/banktransaction"
	"github.com/archportal/booking-service/internal/integrations/gemini"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/ptr"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

type fakeExtractor struct {
	data *gemini.ReceiptData
	err  error
}

func (f *fakeExtractor) ExtractReceipt(context.Context, string, []byte) (*gemini.ReceiptData, error) {
	return f.data, f.err
}

type fakeReceipts struct {
	created []*domain.Receipt
	matches map[int64]int64
}

func (f *fakeReceipts) Create(_ context.Context, rc *domain.Receipt) (*domain.Receipt, error) {
	rc.ID = int64(len(f.created) + 100)
	f.created = append(f.created, rc)
	return rc, nil
}

func (f *fakeReceipts) SetMatch(_ context.Context, receiptID, transactionID int64, _ float64) error {
	if f.matches == nil {
		f.matches = make(map[int64]int64)
	}
	f.matches[receiptID] = transactionID
	return nil
}

type fakeTransactions struct {
	items     []*domain.BankTransaction
	setErr    error
	linked    map[int64]int64
	listFrom  time.Time
	listUntil time.Time
}

func (f *fakeTransactions) ListUnmatched(_ context.Context, from, to time.Time) ([]*domain.BankTransaction, error) {
	f.listFrom, f.listUntil = from, to
	return f.items, nil
}

func (f *fakeTransactions) SetReceipt(_ context.Context, transactionID, receiptID int64) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.linked == nil {
		f.linked = make(map[int64]int64)
	}
	f.linked[transactionID] = receiptID
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeMetrics struct{ results []string }

func (f *fakeMetrics) IncReceiptProcessed(result string) { f.results = append(f.results, result) }

func bauhausReceipt() *gemini.ReceiptData {
	return &gemini.ReceiptData{Merchant: "Bauhaus GmbH", Date: "2026-03-02", Total: 42.5, Currency: "EUR"}
}

func TestBestMatch(t *testing.T) {
	receipt := &domain.Receipt{Merchant: "Bauhaus GmbH", Date: day(2), Total: 42.5, Currency: "EUR"}

	transactions := []*domain.BankTransaction{
		{ID: 1, BookedAt: day(4), Amount: -42.5, Currency: "EUR", Counterparty: "Obi Markt"},
		{ID: 2, BookedAt: day(3), Amount: -42.5, Currency: "EUR", Counterparty: "BAUHAUS Berlin"},
		{ID: 3, BookedAt: day(2), Amount: -42.6, Currency: "EUR", Counterparty: "Bauhaus"},
		{ID: 4, BookedAt: day(9), Amount: -42.5, Currency: "EUR", Counterparty: "Bauhaus"},
		{ID: 5, BookedAt: day(2), Amount: -42.5, Currency: "USD", Counterparty: "Bauhaus"},
		{ID: 6, BookedAt: day(2), Amount: -42.5, Currency: "EUR", Counterparty: "Bauhaus", ReceiptID: ptr.Ptr(int64(1))},
	}

	best, ok := bestMatch(receipt, transactions, 3)
	require.True(t, ok)
	assert.Equal(t, int64(2), best.transaction.ID)
	// 0.5*1 + 0.3*(1-1/4) + 0.2*(1/2)
	assert.InDelta(t, 0.825, best.score, 1e-9)
}

func TestBestMatch_BelowThreshold(t *testing.T) {
	receipt := &domain.Receipt{Merchant: "Baumarkt", Date: day(2), Total: 10, Currency: "EUR"}
	transactions := []*domain.BankTransaction{
		{ID: 1, BookedAt: day(5), Amount: -10.01, Currency: "EUR", Counterparty: "Something else"},
	}

	best, ok := bestMatch(receipt, transactions, 3)
	assert.False(t, ok)
	require.NotNil(t, best)
	assert.Less(t, best.score, matchThreshold)

	_, ok = bestMatch(receipt, nil, 3)
	assert.False(t, ok)
}

func TestTokenSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, tokenSimilarity("Bauhaus GmbH", "BAUHAUS"), 1e-9)
	assert.InDelta(t, 0.5, tokenSimilarity("Bauhaus", "Bauhaus Berlin"), 1e-9)
	assert.Zero(t, tokenSimilarity("", "Bauhaus"))
	assert.Zero(t, tokenSimilarity("Obi", "Bauhaus"))
}

func newUseCase(extractor *fakeExtractor, transactions *fakeTransactions) (*UseCase, *fakeReceipts, *fakeMetrics) {
	receipts, metrics := &fakeReceipts{}, &fakeMetrics{}
	uc := NewUseCase(extractor, receipts, transactions, fakeTx{}, metrics, 3, logger.NewNop())
	return uc, receipts, metrics
}

func TestExecute_StoresAndMatches(t *testing.T) {
	transactions := &fakeTransactions{items: []*domain.BankTransaction{
		{ID: 9, BookedAt: day(2), Amount: -42.5, Currency: "EUR", Counterparty: "BAUHAUS"},
	}}
	uc, receipts, metrics := newUseCase(&fakeExtractor{data: bauhausReceipt()}, transactions)

	resp, err := uc.Execute(context.Background(), &Request{FileName: "scan.jpg", MimeType: "image/JPEG", Data: []byte{0xff, 0xd8}})
	require.NoError(t, err)

	rc := resp.Receipt
	assert.Equal(t, domain.ReceiptStatusMatched, rc.Status)
	require.NotNil(t, rc.BankTransactionID)
	assert.Equal(t, int64(9), *rc.BankTransactionID)
	require.NotNil(t, rc.MatchScore)
	assert.InDelta(t, 1.0, *rc.MatchScore, 1e-9)
	assert.Equal(t, "image/jpeg", rc.MimeType)

	assert.Equal(t, rc.ID, transactions.linked[9])
	assert.Equal(t, int64(9), receipts.matches[rc.ID])
	assert.Equal(t, day(2).AddDate(0, 0, -3), transactions.listFrom)
	assert.Equal(t, []string{"matched"}, metrics.results)
}

func TestExecute_ConcurrentMatchLeavesReceiptUnmatched(t *testing.T) {
	transactions := &fakeTransactions{
		items:  []*domain.BankTransaction{{ID: 9, BookedAt: day(2), Amount: -42.5, Currency: "EUR", Counterparty: "Bauhaus"}},
		setErr: txRepo.ErrTransactionNotFound,
	}
	uc, receipts, metrics := newUseCase(&fakeExtractor{data: bauhausReceipt()}, transactions)

	resp, err := uc.Execute(context.Background(), &Request{FileName: "scan.pdf", MimeType: "application/pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusUnmatched, resp.Receipt.Status)
	assert.Nil(t, resp.Receipt.BankTransactionID)
	assert.Len(t, receipts.created, 1)
	assert.Equal(t, []string{"unmatched"}, metrics.results)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		extractor *fakeExtractor
		wantErr   error
	}{
		{
			name:      "empty file",
			req:       Request{MimeType: "image/png"},
			extractor: &fakeExtractor{data: bauhausReceipt()},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "unsupported type",
			req:       Request{MimeType: "text/plain", Data: []byte("x")},
			extractor: &fakeExtractor{data: bauhausReceipt()},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "file name too long",
			req:       Request{FileName: strings.Repeat("a", 256) + ".png", MimeType: "image/png", Data: []byte("x")},
			extractor: &fakeExtractor{data: bauhausReceipt()},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "too large",
			req:       Request{MimeType: "image/png", Data: make([]byte, domain.MaxReceiptSizeBytes+1)},
			extractor: &fakeExtractor{data: bauhausReceipt()},
			wantErr:   ErrFileTooLarge,
		},
		{
			name:      "model unavailable",
			req:       Request{MimeType: "image/png", Data: []byte("x")},
			extractor: &fakeExtractor{err: fmt.Errorf("%w: quota", gemini.ErrUnavailable)},
			wantErr:   ErrExtractorUnavailable,
		},
		{
			name:      "malformed model output",
			req:       Request{MimeType: "image/png", Data: []byte("x")},
			extractor: &fakeExtractor{err: fmt.Errorf("%w: not json", gemini.ErrInvalidResponse)},
			wantErr:   ErrExtractionFailed,
		},
		{
			name:      "bad date from model",
			req:       Request{MimeType: "image/png", Data: []byte("x")},
			extractor: &fakeExtractor{data: &gemini.ReceiptData{Merchant: "Obi", Date: "02.03.2026", Total: 1}},
			wantErr:   ErrExtractionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, receipts, _ := newUseCase(tt.extractor, &fakeTransactions{})
			req := tt.req

			_, err := uc.Execute(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, receipts.created)
		})
	}
}

func TestExecute_UnknownErrorIsUnavailable(t *testing.T) {
	uc, _, _ := newUseCase(&fakeExtractor{err: errors.New("dial tcp: timeout")}, &fakeTransactions{})

	_, err := uc.Execute(context.Background(), &Request{MimeType: "image/png", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrExtractorUnavailable)
}
