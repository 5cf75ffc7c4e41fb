package banktransaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий банковских операций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория банковских операций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет операцию. Повтор (та же дата, сумма и назначение платежа) пропускается:
// возвращается false без ошибки
func (r *Repository) Create(ctx context.Context, t *domain.BankTransaction) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bank_transactions").
		Columns("booked_at", "amount", "currency", "counterparty", "reference").
		Values(t.BookedAt, t.Amount, t.Currency, t.Counterparty, t.Reference).
		Suffix("ON CONFLICT (booked_at, amount, reference) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListUnmatched получает операции без привязанного чека в окне дат [from, to]
func (r *Repository) ListUnmatched(ctx context.Context, from, to time.Time) ([]*domain.BankTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booked_at", "amount", "currency", "counterparty", "reference", "created_at").
		From("bank_transactions").
		Where(squirrel.Eq{"receipt_id": nil}).
		Where(squirrel.GtOrEq{"booked_at": from}).
		Where(squirrel.LtOrEq{"booked_at": to}).
		OrderBy("booked_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUnmatched - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUnmatched - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	transactions := make([]*domain.BankTransaction, 0)
	for rows.Next() {
		var t domain.BankTransaction
		if err := rows.Scan(&t.ID, &t.BookedAt, &t.Amount, &t.Currency, &t.Counterparty, &t.Reference, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListUnmatched - scan row: %v", ErrScanRow, err)
		}
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUnmatched - rows error: %v", ErrScanRow, err)
	}

	return transactions, nil
}

// SetReceipt привязывает чек к операции, если она ещё свободна
func (r *Repository) SetReceipt(ctx context.Context, transactionID, receiptID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bank_transactions").
		Set("receipt_id", receiptID).
		Where(squirrel.Eq{"id": transactionID, "receipt_id": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetReceipt - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetReceipt - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetReceipt - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
