package receipt

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий распознанных чеков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория чеков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет распознанный чек
func (r *Repository) Create(ctx context.Context, rc *domain.Receipt) (*domain.Receipt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("receipts").
		Columns("file_name", "mime_type", "merchant", "receipt_date", "total", "currency", "vat_amount", "status").
		Values(rc.FileName, rc.MimeType, rc.Merchant, rc.Date, rc.Total, rc.Currency, rc.VATAmount, rc.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rc.ID, &rc.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rc, nil
}

// SetMatch привязывает чек к банковской операции
func (r *Repository) SetMatch(ctx context.Context, receiptID, transactionID int64, score float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("receipts").
		Set("bank_transaction_id", transactionID).
		Set("match_score", score).
		Set("status", domain.ReceiptStatusMatched).
		Where(squirrel.Eq{"id": receiptID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMatch - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetMatch - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetMatch - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReceiptNotFound
	}

	return nil
}

// GetByID получает чек по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Receipt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "file_name", "mime_type", "merchant", "receipt_date", "total", "currency",
		"vat_amount", "status", "bank_transaction_id", "match_score", "created_at",
	).
		From("receipts").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		rc    domain.Receipt
		vat   sql.NullFloat64
		txID  sql.NullInt64
		score sql.NullFloat64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rc.ID, &rc.FileName, &rc.MimeType, &rc.Merchant, &rc.Date, &rc.Total, &rc.Currency,
		&vat, &rc.Status, &txID, &score, &rc.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan receipt: %v", ErrScanRow, err)
	}

	if vat.Valid {
		rc.VATAmount = &vat.Float64
	}
	if txID.Valid {
		rc.BankTransactionID = &txID.Int64
	}
	if score.Valid {
		rc.MatchScore = &score.Float64
	}

	return &rc, nil
}
