package bookingtoken

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

func tokenRow(now time.Time, used bool) *sqlmock.Rows {
	return sqlmock.NewRows(columns).
		AddRow(int64(7), "abc123", "Anna Schmidt", "anna@example.com", nil, now.Add(time.Hour), used, nil, int64(1), now)
}

func TestConsume_Success(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE booking_tokens SET used = \$1, used_at = \$2 WHERE token = \$3 AND used = \$4 AND expires_at >= \$5 RETURNING id`).
		WithArgs(true, now, "abc123", false, now).
		WillReturnRows(tokenRow(now, true))

	token, err := repo.Consume(context.Background(), "abc123", now)
	require.NoError(t, err)
	assert.Equal(t, int64(7), token.ID)
	assert.True(t, token.Used)
	assert.Nil(t, token.AppointmentTypeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsume_NoRows(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE booking_tokens`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.Consume(context.Background(), "abc123", now)
	assert.ErrorIs(t, err, ErrTokenNotConsumable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByToken_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM booking_tokens WHERE token = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestCreate_DuplicateToken(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO booking_tokens`).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &domain.BookingToken{Token: "dup", ExpiresAt: time.Now()})
	assert.ErrorIs(t, err, ErrTokenExists)
}
