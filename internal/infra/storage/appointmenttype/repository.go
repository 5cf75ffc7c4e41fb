package appointmenttype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/psqlbuilder"
)

var columns = []string{"id", "name", "description", "duration_minutes", "is_active", "created_at", "updated_at"}

// Repository репозиторий типов встреч
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает тип встречи
func (r *Repository) Create(ctx context.Context, t *domain.AppointmentType) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointment_types").
		Columns("name", "description", "duration_minutes", "is_active").
		Values(t.Name, t.Description, t.DurationMinutes, t.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// Update обновляет тип встречи
func (r *Repository) Update(ctx context.Context, t *domain.AppointmentType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointment_types").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("duration_minutes", t.DurationMinutes).
		Set("is_active", t.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentTypeNotFound
	}

	return nil
}

// GetByID получает тип встречи по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointment_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanType(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan type: %v", ErrScanRow, err)
	}

	return t, nil
}

// List получает типы встреч, опционально только активные
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("appointment_types").
		OrderBy("name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.AppointmentType, 0)
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		types = append(types, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanType(row rowScanner) (*domain.AppointmentType, error) {
	var (
		t           domain.AppointmentType
		description sql.NullString
		updatedAt   sql.NullTime
	)

	if err := row.Scan(&t.ID, &t.Name, &description, &t.DurationMinutes, &t.IsActive, &t.CreatedAt, &updatedAt); err != nil {
		return nil, err
	}

	if description.Valid {
		t.Description = &description.String
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}

	return &t, nil
}
