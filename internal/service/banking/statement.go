package banking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// Колонки выписки: date,amount,currency,counterparty,reference
const (
	colDate = iota
	colAmount
	colCurrency
	colCounterparty
	colReference
	columnCount
)

var dateLayouts = []string{domain.DateFormat, "02.01.2006"}

type statementRow struct {
	line        int
	transaction *domain.BankTransaction
	err         error
}

// readStatement разбирает CSV выписку. Строка заголовка пропускается,
// ошибочные строки возвращаются с ошибкой и не прерывают разбор
func readStatement(r io.Reader) ([]statementRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []statementRow
	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStatement, err)
		}
		line, _ := reader.FieldPos(0)

		if first && isHeader(record) {
			continue
		}
		if isBlank(record) {
			continue
		}

		t, err := parseRecord(record)
		rows = append(rows, statementRow{line: line, transaction: t, err: err})
	}

	return rows, nil
}

func parseRecord(record []string) (*domain.BankTransaction, error) {
	if len(record) < columnCount {
		return nil, fmt.Errorf("expected %d columns, got %d", columnCount, len(record))
	}

	bookedAt, err := parseDate(strings.TrimSpace(record[colDate]))
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(record[colCurrency]))
	if len(currency) != 3 {
		return nil, fmt.Errorf("invalid currency %q", record[colCurrency])
	}

	return &domain.BankTransaction{
		BookedAt:     bookedAt,
		Amount:       amount,
		Currency:     currency,
		Counterparty: strings.TrimSpace(record[colCounterparty]),
		Reference:    strings.TrimSpace(record[colReference]),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseAmount принимает "1234.56", "1234,56", "1.234,56" и "1,234.56"
func parseAmount(s string) (float64, error) {
	normalized := s
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && comma > dot:
		normalized = strings.ReplaceAll(s, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
	case comma >= 0:
		normalized = strings.ReplaceAll(s, ",", "")
	}
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
