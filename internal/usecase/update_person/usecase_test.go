package update_person

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archportal/booking-service/internal/domain"
	personRepo "github.com/archportal/booking-service/internal/infra/storage/person"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/logger"
	"github.com/archportal/booking-service/pkg/txmanager"
)

func newUseCase(t *testing.T) (*UseCase, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	uc := NewUseCase(personRepo.NewRepository(wrapped), txmanager.NewTransactionManager(wrapped), logger.NewNop())
	return uc, mock
}

func testPerson() domain.Person {
	return domain.Person{
		ID:        7,
		FirstName: "Anna",
		LastName:  "Schmidt",
		Emails: []domain.PersonEmail{
			{Email: "anna@example.com", Label: "work", IsPrimary: true},
		},
		Phones: []domain.PersonPhone{
			{Phone: "+49 30 1234567", Label: "mobile", IsPrimary: true},
		},
		Addresses: []domain.PersonAddress{
			{Street: "Torstraße 1", City: "Berlin", PostalCode: "10119", Country: "DE", Label: "home"},
		},
	}
}

func TestExecute_CommitsAllChanges(t *testing.T) {
	uc, mock := newUseCase(t)
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE persons SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM person_emails").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO person_emails").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM person_phones").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO person_phones").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM person_addresses").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO person_addresses").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT (.+) FROM persons").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "company", "notes", "created_at", "updated_at"}).
			AddRow(7, "Anna", "Schmidt", nil, nil, created, created))
	mock.ExpectQuery("SELECT (.+) FROM person_emails").
		WillReturnRows(sqlmock.NewRows([]string{"id", "person_id", "email", "label", "is_primary"}).
			AddRow(31, 7, "anna@example.com", "work", true))
	mock.ExpectQuery("SELECT (.+) FROM person_phones").
		WillReturnRows(sqlmock.NewRows([]string{"id", "person_id", "phone", "label", "is_primary"}).
			AddRow(41, 7, "+49 30 1234567", "mobile", true))
	mock.ExpectQuery("SELECT (.+) FROM person_addresses").
		WillReturnRows(sqlmock.NewRows([]string{"id", "person_id", "street", "city", "postal_code", "country", "label"}).
			AddRow(51, 7, "Torstraße 1", "Berlin", "10119", "DE", "home"))

	resp, err := uc.Execute(context.Background(), &Request{Person: testPerson()})
	require.NoError(t, err)

	assert.Equal(t, "Anna Schmidt", resp.Person.FullName())
	require.Len(t, resp.Person.Emails, 1)
	assert.Equal(t, int64(31), resp.Person.Emails[0].ID)
	require.Len(t, resp.Person.Addresses, 1)
	assert.Equal(t, "Berlin", resp.Person.Addresses[0].City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicatePhoneRollsBackEverything(t *testing.T) {
	uc, mock := newUseCase(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE persons SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM person_emails").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO person_emails").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM person_phones").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO person_phones").
		WillReturnError(&pq.Error{Code: "23505", Detail: "Key (phone)=(+49 30 1234567) already exists."})
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), &Request{Person: testPerson()})
	assert.ErrorIs(t, err, ErrDuplicateContact)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_PersonNotFound(t *testing.T) {
	uc, mock := newUseCase(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE persons SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), &Request{Person: testPerson()})
	assert.ErrorIs(t, err, ErrPersonNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_InvalidInputTouchesNothing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Person)
	}{
		{name: "missing id", mutate: func(p *domain.Person) { p.ID = 0 }},
		{name: "missing first name", mutate: func(p *domain.Person) { p.FirstName = " " }},
		{name: "bad email", mutate: func(p *domain.Person) { p.Emails[0].Email = "anna" }},
		{name: "two primary emails", mutate: func(p *domain.Person) {
			p.Emails = append(p.Emails, domain.PersonEmail{Email: "a2@example.com", IsPrimary: true})
		}},
		{name: "empty phone", mutate: func(p *domain.Person) { p.Phones[0].Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, mock := newUseCase(t)
			p := testPerson()
			tt.mutate(&p)

			_, err := uc.Execute(context.Background(), &Request{Person: p})
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
