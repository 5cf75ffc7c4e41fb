package appointmenttypes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	typeRepo "github.com/archportal/booking-service/internal/infra/storage/appointmenttype"
	"github.com/archportal/booking-service/internal/service/appointmenttypes/models"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/ptr"
)

type fakeRepo struct {
	items      map[int64]*domain.AppointmentType
	onlyActive bool
	listErr    error
}

func (f *fakeRepo) Create(_ context.Context, t *domain.AppointmentType) (*domain.AppointmentType, error) {
	t.ID = int64(len(f.items) + 1)
	f.items[t.ID] = t
	return t, nil
}

func (f *fakeRepo) Update(_ context.Context, t *domain.AppointmentType) error {
	if _, ok := f.items[t.ID]; !ok {
		return typeRepo.ErrAppointmentTypeNotFound
	}
	f.items[t.ID] = t
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentType, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, typeRepo.ErrAppointmentTypeNotFound
	}
	return t, nil
}

func (f *fakeRepo) List(_ context.Context, onlyActive bool) ([]*domain.AppointmentType, error) {
	f.onlyActive = onlyActive
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.AppointmentType, 0, len(f.items))
	for _, t := range f.items {
		out = append(out, t)
	}
	return out, nil
}

func TestCreateAndUpdate(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*domain.AppointmentType{}}
	s := NewService(repo, logger.NewNop())

	created, err := s.Create(context.Background(), &models.SaveAppointmentTypeRequest{Name: "  Site visit ", DurationMinutes: 120})
	require.NoError(t, err)
	assert.Equal(t, "Site visit", created.Name)
	assert.True(t, created.Active)

	updated, err := s.Update(context.Background(), created.ID, &models.SaveAppointmentTypeRequest{
		Name: "Site visit", DurationMinutes: 90, Active: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.DurationMinutes)
	assert.False(t, updated.Active)

	_, err = s.Update(context.Background(), 42, &models.SaveAppointmentTypeRequest{Name: "x", DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestValidation(t *testing.T) {
	s := NewService(&fakeRepo{items: map[int64]*domain.AppointmentType{}}, logger.NewNop())

	tests := map[string]models.SaveAppointmentTypeRequest{
		"empty name":    {Name: "  ", DurationMinutes: 30},
		"too short":     {Name: "Call", DurationMinutes: 4},
		"too long":      {Name: "Call", DurationMinutes: 481},
		"zero duration": {Name: "Call"},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := s.Create(context.Background(), &req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestList(t *testing.T) {
	repo := &fakeRepo{items: map[int64]*domain.AppointmentType{
		1: {ID: 1, Name: "Consultation", DurationMinutes: 60, IsActive: true},
	}}
	s := NewService(repo, logger.NewNop())

	list, err := s.List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.True(t, repo.onlyActive)

	repo.listErr = errors.New("timeout")
	_, err = s.List(context.Background(), false)
	assert.ErrorIs(t, err, ErrInternal)
}
