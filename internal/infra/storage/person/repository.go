package person

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/archportal/booking-service/internal/domain"
	"github.com/archportal/booking-service/pkg/dbmetrics"
	"github.com/archportal/booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий контактов и их дочерних записей (emails, телефоны, адреса).
// Методы не открывают транзакций сами: согласованность обеспечивает вызывающий код через txmanager
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория контактов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает контакт без дочерних записей
func (r *Repository) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("persons").
		Columns("first_name", "last_name", "company", "notes").
		Values(p.FirstName, p.LastName, p.Company, p.Notes).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// Update обновляет поля контакта
func (r *Repository) Update(ctx context.Context, p *domain.Person) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("persons").
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("company", p.Company).
		Set("notes", p.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
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
		return ErrPersonNotFound
	}

	return nil
}

// GetByID получает контакт вместе с дочерними записями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "first_name", "last_name", "company", "notes", "created_at", "updated_at").
		From("persons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		p         domain.Person
		company   sql.NullString
		notes     sql.NullString
		updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.FirstName, &p.LastName, &company, &notes, &p.CreatedAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan person: %v", ErrScanRow, err)
	}

	if company.Valid {
		p.Company = &company.String
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}

	if p.Emails, err = r.listEmails(ctx, executor, id); err != nil {
		return nil, err
	}
	if p.Phones, err = r.listPhones(ctx, executor, id); err != nil {
		return nil, err
	}
	if p.Addresses, err = r.listAddresses(ctx, executor, id); err != nil {
		return nil, err
	}

	return &p, nil
}

// ReplaceEmails заменяет все email контакта
func (r *Repository) ReplaceEmails(ctx context.Context, personID int64, emails []domain.PersonEmail) error {
	if err := r.deleteChildren(ctx, "person_emails", personID); err != nil {
		return err
	}
	if len(emails) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("person_emails").Columns("person_id", "email", "label", "is_primary")
	for _, e := range emails {
		builder = builder.Values(personID, e.Email, e.Label, e.IsPrimary)
	}

	return r.insertChildren(ctx, "ReplaceEmails", builder)
}

// ReplacePhones заменяет все телефоны контакта
func (r *Repository) ReplacePhones(ctx context.Context, personID int64, phones []domain.PersonPhone) error {
	if err := r.deleteChildren(ctx, "person_phones", personID); err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("person_phones").Columns("person_id", "phone", "label", "is_primary")
	for _, ph := range phones {
		builder = builder.Values(personID, ph.Phone, ph.Label, ph.IsPrimary)
	}

	return r.insertChildren(ctx, "ReplacePhones", builder)
}

// ReplaceAddresses заменяет все адреса контакта
func (r *Repository) ReplaceAddresses(ctx context.Context, personID int64, addresses []domain.PersonAddress) error {
	if err := r.deleteChildren(ctx, "person_addresses", personID); err != nil {
		return err
	}
	if len(addresses) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("person_addresses").Columns("person_id", "street", "city", "postal_code", "country", "label")
	for _, a := range addresses {
		builder = builder.Values(personID, a.Street, a.City, a.PostalCode, a.Country, a.Label)
	}

	return r.insertChildren(ctx, "ReplaceAddresses", builder)
}

func (r *Repository) deleteChildren(ctx context.Context, table string, personID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"person_id": personID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: delete %s - build delete query: %v", ErrBuildQuery, table, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: delete %s - execute delete: %v", ErrExecQuery, table, err)
	}

	return nil
}

func (r *Repository) insertChildren(ctx context.Context, op string, builder squirrel.InsertBuilder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build insert query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s: %s", ErrDuplicateContact, op, pqErr.Detail)
		}
		return fmt.Errorf("%w: %s - execute insert: %v", ErrExecQuery, op, err)
	}

	return nil
}

func (r *Repository) listEmails(ctx context.Context, executor DBExecutor, personID int64) ([]domain.PersonEmail, error) {
	query, args, err := psqlbuilder.Select("id", "person_id", "email", "label", "is_primary").
		From("person_emails").
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listEmails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listEmails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	emails := make([]domain.PersonEmail, 0)
	for rows.Next() {
		var e domain.PersonEmail
		if err := rows.Scan(&e.ID, &e.PersonID, &e.Email, &e.Label, &e.IsPrimary); err != nil {
			return nil, fmt.Errorf("%w: listEmails - scan row: %v", ErrScanRow, err)
		}
		emails = append(emails, e)
	}

	return emails, rows.Err()
}

func (r *Repository) listPhones(ctx context.Context, executor DBExecutor, personID int64) ([]domain.PersonPhone, error) {
	query, args, err := psqlbuilder.Select("id", "person_id", "phone", "label", "is_primary").
		From("person_phones").
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listPhones - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listPhones - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	phones := make([]domain.PersonPhone, 0)
	for rows.Next() {
		var ph domain.PersonPhone
		if err := rows.Scan(&ph.ID, &ph.PersonID, &ph.Phone, &ph.Label, &ph.IsPrimary); err != nil {
			return nil, fmt.Errorf("%w: listPhones - scan row: %v", ErrScanRow, err)
		}
		phones = append(phones, ph)
	}

	return phones, rows.Err()
}

func (r *Repository) listAddresses(ctx context.Context, executor DBExecutor, personID int64) ([]domain.PersonAddress, error) {
	query, args, err := psqlbuilder.Select("id", "person_id", "street", "city", "postal_code", "country", "label").
		From("person_addresses").
		Where(squirrel.Eq{"person_id": personID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listAddresses - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listAddresses - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	addresses := make([]domain.PersonAddress, 0)
	for rows.Next() {
		var a domain.PersonAddress
		if err := rows.Scan(&a.ID, &a.PersonID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.Label); err != nil {
			return nil, fmt.Errorf("%w: listAddresses - scan row: %v", ErrScanRow, err)
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}
