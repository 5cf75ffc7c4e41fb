package extract_receipt

import "github.com/archportal/booking-service/internal/domain"

// Request загруженный файл чека
type Request struct {
	FileName string
	MimeType string
	Data     []byte
}

// Response сохранённый чек; BankTransactionID и MatchScore заполнены, если найдена операция
type Response struct {
	Receipt *domain.Receipt
}
