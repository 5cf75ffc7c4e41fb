package bookingtoken

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var columns = []string{
	"id",
	"token",
	"contact_name",
	"contact_email",
	"appointment_type_id",
	"expires_at",
	"used",
	"used_at",
	"created_by",
	"created_at",
}

// Repository репозиторий одноразовых ссылок на запись
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый токен
func (r *Repository) Create(ctx context.Context, token *domain.BookingToken) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_tokens").
		Columns("token", "contact_name", "contact_email", "appointment_type_id", "expires_at", "created_by").
		Values(token.Token, token.ContactName, token.ContactEmail, token.AppointmentTypeID, token.ExpiresAt, token.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrTokenExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return token, nil
}

// GetByToken получает токен по значению
func (r *Repository) GetByToken(ctx context.Context, value string) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("booking_tokens").
		Where(squirrel.Eq{"token": value}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	token, err := scanToken(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan token: %v", ErrScanRow, err)
	}

	return token, nil
}

// Consume атомарно гасит токен одним условным UPDATE.
// Из двух конкурентных запросов с одним токеном строку обновит только один,
// второй получит ErrTokenNotConsumable и должен классифицировать причину через GetByToken
func (r *Repository) Consume(ctx context.Context, value string, now time.Time) (*domain.BookingToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_tokens").
		Set("used", true).
		Set("used_at", now).
		Where(squirrel.Eq{"token": value, "used": false}).
		Where(squirrel.GtOrEq{"expires_at": now}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Consume - build update query: %v", ErrBuildQuery, err)
	}

	token, err := scanToken(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotConsumable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Consume - execute update: %v", ErrExecQuery, err)
	}

	return token, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanToken(row rowScanner) (*domain.BookingToken, error) {
	var (
		t      domain.BookingToken
		typeID sql.NullInt64
		usedAt sql.NullTime
	)

	err := row.Scan(
		&t.ID,
		&t.Token,
		&t.ContactName,
		&t.ContactEmail,
		&typeID,
		&t.ExpiresAt,
		&t.Used,
		&usedAt,
		&t.CreatedBy,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if typeID.Valid {
		t.AppointmentTypeID = &typeID.Int64
	}
	if usedAt.Valid {
		t.UsedAt = &usedAt.Time
	}

	return &t, nil
}
