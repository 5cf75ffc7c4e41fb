package banktransaction

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
)

func TestCreate_DuplicateIsSkipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	tx := &domain.BankTransaction{
		BookedAt:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Amount:    -42.5,
		Currency:  "EUR",
		Reference: "INV-17",
	}

	mock.ExpectQuery(`INSERT INTO bank_transactions .+ ON CONFLICT .+ DO NOTHING RETURNING id, created_at`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	created, err := repo.Create(context.Background(), tx)
	require.NoError(t, err)
	assert.False(t, created)

	mock.ExpectQuery(`INSERT INTO bank_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))

	created, err = repo.Create(context.Background(), tx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(3), tx.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
