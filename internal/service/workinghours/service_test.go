package workinghours

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	hoursRepo "github.com/archportal/booking-service/internal/infra/storage/workinghours"
	"github.com/archportal/booking-service/internal/service/workinghours/models"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/types"
)

type fakeRepo struct {
	hours  map[int64]domain.WeeklyHours
	getErr error
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID int64) (*domain.WeeklyHours, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	h, ok := f.hours[userID]
	if !ok {
		return nil, hoursRepo.ErrWorkingHoursNotFound
	}
	return &h, nil
}

func (f *fakeRepo) Upsert(_ context.Context, userID int64, hours domain.WeeklyHours) error {
	f.hours[userID] = hours
	return nil
}

func tr(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: types.MustTimeString(start), End: types.MustTimeString(end)}
}

func TestResolve(t *testing.T) {
	custom := domain.WeeklyHours{Saturday: []domain.TimeRange{tr("10:00", "14:00")}}
	repo := &fakeRepo{hours: map[int64]domain.WeeklyHours{1: custom}}
	s := NewService(repo, logger.NewNop())

	assert.Equal(t, custom, s.Resolve(context.Background(), 1))
	assert.Equal(t, domain.DefaultWeeklyHours(), s.Resolve(context.Background(), 2))

	repo.getErr = errors.New("connection refused")
	assert.Equal(t, domain.DefaultWeeklyHours(), s.Resolve(context.Background(), 1))
}

func TestGetAndUpdate(t *testing.T) {
	repo := &fakeRepo{hours: map[int64]domain.WeeklyHours{}}
	s := NewService(repo, logger.NewNop())

	resp, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)

	hours := domain.WeeklyHours{Monday: []domain.TimeRange{tr("08:00", "12:00"), tr("12:30", "16:00")}}
	_, err = s.Update(context.Background(), &models.UpdateWorkingHoursRequest{UserID: 1, Hours: hours})
	require.NoError(t, err)

	resp, err = s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, hours, resp.Hours)
}

func TestUpdate_RejectsInvalidHours(t *testing.T) {
	repo := &fakeRepo{hours: map[int64]domain.WeeklyHours{}}
	s := NewService(repo, logger.NewNop())

	tests := map[string]domain.WeeklyHours{
		"start after end": {Monday: []domain.TimeRange{tr("12:00", "09:00")}},
		"overlapping":     {Monday: []domain.TimeRange{tr("09:00", "12:00"), tr("11:00", "13:00")}},
		"unordered":       {Monday: []domain.TimeRange{tr("13:00", "15:00"), tr("09:00", "12:00")}},
	}

	for name, hours := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Update(context.Background(), &models.UpdateWorkingHoursRequest{UserID: 1, Hours: hours})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.hours)
		})
	}
}
