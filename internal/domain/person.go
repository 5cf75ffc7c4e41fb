package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Person контакт (клиент, подрядчик)
type Person struct {
	ID        int64
	FirstName string
	LastName  string
	Company   *string
	Notes     *string
	Emails    []PersonEmail
	Phones    []PersonPhone
	Addresses []PersonAddress
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// FullName имя и фамилия через пробел
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type PersonEmail struct {
	ID        int64
	PersonID  int64
	Email     string
	Label     string
	IsPrimary bool
}

type PersonPhone struct {
	ID        int64
	PersonID  int64
	Phone     string
	Label     string
	IsPrimary bool
}

type PersonAddress struct {
	ID         int64
	PersonID   int64
	Street     string
	City       string
	PostalCode string
	Country    string
	Label      string
}

// ErrInvalidPerson возвращается при некорректных данных контакта
var ErrInvalidPerson = errors.New("invalid person")

// Validate проверяет контакт и его дочерние записи.
// Допускается не более одного основного email и одного основного телефона
func (p *Person) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidPerson)
	}

	primaryEmails := 0
	for i, e := range p.Emails {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			return fmt.Errorf("%w: emails[%d] is not a valid address", ErrInvalidPerson, i)
		}
		if e.IsPrimary {
			primaryEmails++
		}
	}
	if primaryEmails > 1 {
		return fmt.Errorf("%w: only one email can be primary", ErrInvalidPerson)
	}

	primaryPhones := 0
	for i, ph := range p.Phones {
		if strings.TrimSpace(ph.Phone) == "" {
			return fmt.Errorf("%w: phones[%d] is empty", ErrInvalidPerson, i)
		}
		if ph.IsPrimary {
			primaryPhones++
		}
	}
	if primaryPhones > 1 {
		return fmt.Errorf("%w: only one phone can be primary", ErrInvalidPerson)
	}

	for i, a := range p.Addresses {
		if strings.TrimSpace(a.Street) == "" && strings.TrimSpace(a.City) == "" {
			return fmt.Errorf("%w: addresses[%d] needs a street or a city", ErrInvalidPerson, i)
		}
	}

	if p.Notes != nil && len(*p.Notes) > MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidPerson, MaxNotesLength)
	}

	return nil
}
