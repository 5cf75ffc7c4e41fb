package banking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	receiptRepo "github.com/archportal/booking-service/internal/infra/storage/receipt"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/ptr"
)

type fakeTransactions struct {
	seen      map[string]bool
	created   []*domain.BankTransaction
	failAfter int
}

func (f *fakeTransactions) Create(_ context.Context, t *domain.BankTransaction) (bool, error) {
	if f.failAfter > 0 && len(f.created) >= f.failAfter {
		return false, errors.New("connection reset")
	}
	key := t.BookedAt.Format(domain.DateFormat) + "|" + t.Reference
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	f.created = append(f.created, t)
	return true, nil
}

type fakeReceipts struct{ items map[int64]*domain.Receipt }

func (f *fakeReceipts) GetByID(_ context.Context, id int64) (*domain.Receipt, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, receiptRepo.ErrReceiptNotFound
	}
	return r, nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func newService(transactions *fakeTransactions, receipts *fakeReceipts) *Service {
	return NewService(transactions, receipts, fakeTx{}, logger.NewNop())
}

const statement = `date,amount,currency,counterparty,reference
2026-03-02,-42.50,EUR,Bauhaus Berlin,Card 4711
03.03.2026,"-1.234,56",eur,Obi Markt,Invoice 88

2026-03-02,-42.50,EUR,Bauhaus Berlin,Card 4711
2026-13-01,-5,EUR,Kiosk,x
2026-03-04,abc,EUR,Kiosk,y
2026-03-05,10,EURO,Kiosk,z
2026-03-06,10,EUR
`

func TestImportStatement(t *testing.T) {
	transactions := &fakeTransactions{seen: map[string]bool{}}
	s := newService(transactions, &fakeReceipts{})

	resp, err := s.ImportStatement(context.Background(), strings.NewReader(statement))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, resp.Errors, 4)
	assert.True(t, strings.HasPrefix(resp.Errors[0], "line 6:"), resp.Errors[0])
	assert.Contains(t, resp.Errors[3], "expected 5 columns")

	obi := transactions.created[1]
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), obi.BookedAt)
	assert.InDelta(t, -1234.56, obi.Amount, 1e-9)
	assert.Equal(t, "EUR", obi.Currency)
}

func TestImportStatement_WithoutHeader(t *testing.T) {
	transactions := &fakeTransactions{seen: map[string]bool{}}
	s := newService(transactions, &fakeReceipts{})

	resp, err := s.ImportStatement(context.Background(), strings.NewReader("2026-03-02,-42.50,EUR,Bauhaus,Card\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Imported)
	assert.Empty(t, resp.Errors)
}

func TestImportStatement_Errors(t *testing.T) {
	s := newService(&fakeTransactions{seen: map[string]bool{}}, &fakeReceipts{})
	_, err := s.ImportStatement(context.Background(), strings.NewReader("2026-03-02,\"broken,EUR\n"))
	assert.ErrorIs(t, err, ErrInvalidStatement)

	s = newService(&fakeTransactions{seen: map[string]bool{}, failAfter: 1}, &fakeReceipts{})
	_, err = s.ImportStatement(context.Background(), strings.NewReader(statement))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetReceipt(t *testing.T) {
	receipts := &fakeReceipts{items: map[int64]*domain.Receipt{
		7: {
			ID: 7, FileName: "scan.pdf", Merchant: "Bauhaus", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			Total: 42.5, Currency: "EUR", Status: domain.ReceiptStatusMatched,
			BankTransactionID: ptr.Ptr(int64(9)), MatchScore: ptr.Ptr(0.9),
		},
	}}
	s := newService(&fakeTransactions{}, receipts)

	resp, err := s.GetReceipt(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "matched", resp.Status)
	assert.Equal(t, int64(9), *resp.BankTransactionID)

	_, err = s.GetReceipt(context.Background(), 8)
	assert.ErrorIs(t, err, ErrReceiptNotFound)
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"-42.50":    -42.5,
		"42,50":     42.5,
		"-1.234,56": -1234.56,
		"1,234.56":  1234.56,
		"100":       100,
	}
	for in, want := range tests {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}

	_, err := parseAmount("12a")
	assert.Error(t, err)
}
