package domain

import "time"

// ReceiptStatus статус обработки чека
type ReceiptStatus string

const (
	ReceiptStatusMatched   ReceiptStatus = "matched"
	ReceiptStatusUnmatched ReceiptStatus = "unmatched"
)

// Receipt чек, распознанный из загруженного файла
type Receipt struct {
	ID                int64
	FileName          string
	MimeType          string
	Merchant          string
	Date              time.Time
	Total             float64
	Currency          string
	VATAmount         *float64
	Status            ReceiptStatus
	BankTransactionID *int64
	MatchScore        *float64
	CreatedAt         time.Time
}

// BankTransaction операция из банковской выписки
type BankTransaction struct {
	ID           int64
	BookedAt     time.Time
	Amount       float64
	Currency     string
	Counterparty string
	Reference    string
	ReceiptID    *int64
	CreatedAt    time.Time
}

// IsMatched возвращает true, если к операции уже привязан чек
func (t *BankTransaction) IsMatched() bool {
	return t.ReceiptID != nil
}

// User администратор (архитектор), от имени которого ведётся расписание
type User struct {
	ID        int64
	Email     string
	Name      string
	IsAdmin   bool
	CreatedAt time.Time
}
