package models

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// ImportResponse итог импорта выписки
type ImportResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ReceiptResponse распознанный чек
type ReceiptResponse struct {
	ID                int64    `json:"id"`
	FileName          string   `json:"fileName"`
	Merchant          string   `json:"merchant"`
	Date              string   `json:"date"`
	Total             float64  `json:"total"`
	Currency          string   `json:"currency"`
	VATAmount         *float64 `json:"vatAmount,omitempty"`
	Status            string   `json:"status"`
	BankTransactionID *int64   `json:"bankTransactionId,omitempty"`
	MatchScore        *float64 `json:"matchScore,omitempty"`
	CreatedAt         string   `json:"createdAt"`
}

// FromDomainReceipt конвертирует domain модель в response
func FromDomainReceipt(r *domain.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:                r.ID,
		FileName:          r.FileName,
		Merchant:          r.Merchant,
		Date:              r.Date.Format(domain.DateFormat),
		Total:             r.Total,
		Currency:          r.Currency,
		VATAmount:         r.VATAmount,
		Status:            string(r.Status),
		BankTransactionID: r.BankTransactionID,
		MatchScore:        r.MatchScore,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
}
