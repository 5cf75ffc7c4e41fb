package workinghours

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий рабочих часов. Расписание хранится одним JSONB документом на пользователя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает рабочие часы пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.WeeklyHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("hours").
		From("working_hours").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var raw []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan hours: %v", ErrScanRow, err)
	}

	var hours domain.WeeklyHours
	if err := json.Unmarshal(raw, &hours); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - user %d: %v", ErrDecode, userID, err)
	}

	return &hours, nil
}

// Upsert сохраняет рабочие часы пользователя, заменяя предыдущие
func (r *Repository) Upsert(ctx context.Context, userID int64, hours domain.WeeklyHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	raw, err := json.Marshal(hours)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal hours: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns("user_id", "hours").
		Values(userID, raw).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET hours = EXCLUDED.hours, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
