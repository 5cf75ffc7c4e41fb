package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	appointmentRepo "github.com/archportal/booking-service/internal/infra/storage/appointment"
	"github.com/archportal/booking-service/internal/service/appointments/models"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/ptr"
)

type fakeRepo struct {
	items   map[int64]*domain.Appointment
	listErr error
	filter  domain.AppointmentFilter
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Appointment, 0, len(f.items))
	for _, a := range f.items {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	a, ok := f.items[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func newService() (*Service, *fakeRepo, *fakeTx) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeRepo{items: map[int64]*domain.Appointment{
		1: {ID: 1, UserID: 1, ContactName: "Anna", Title: "Consultation: Anna", StartTime: start, EndTime: start.Add(time.Hour), Status: domain.AppointmentStatusConfirmed},
		2: {ID: 2, UserID: 1, ContactName: "Ben", StartTime: start, EndTime: start.Add(time.Hour), Status: domain.AppointmentStatusCancelled},
		3: {ID: 3, UserID: 2, ContactName: "Clara", StartTime: start, EndTime: start.Add(time.Hour), Status: domain.AppointmentStatusConfirmed},
	}}
	tx := &fakeTx{}
	return NewService(repo, tx, logger.NewNop()), repo, tx
}

func TestCancel(t *testing.T) {
	s, repo, tx := newService()

	resp, err := s.Cancel(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, domain.AppointmentStatusCancelled, repo.items[1].Status)
	assert.Equal(t, 1, tx.calls)

	_, err = s.Cancel(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = s.Cancel(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = s.Cancel(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.AppointmentStatusConfirmed, repo.items[3].Status)

	_, err = s.Cancel(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByID(t *testing.T) {
	s, _, _ := newService()

	resp, err := s.GetByID(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Consultation: Anna", resp.Title)

	_, err = s.GetByID(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList(t *testing.T) {
	s, repo, _ := newService()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	resp, err := s.List(context.Background(), &models.ListAppointmentsRequest{
		UserID: 1, From: &from, To: &to, Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 3)
	require.NotNil(t, repo.filter.Status)
	assert.Equal(t, domain.AppointmentStatusConfirmed, *repo.filter.Status)
	assert.Equal(t, int64(1), *repo.filter.UserID)

	_, err = s.List(context.Background(), &models.ListAppointmentsRequest{UserID: 1, Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.List(context.Background(), &models.ListAppointmentsRequest{UserID: 1, From: &to, To: &from})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("connection reset")
	_, err = s.List(context.Background(), &models.ListAppointmentsRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
