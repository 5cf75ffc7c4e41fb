package models

import (
	"time"

	"github.com/archportal/booking-service/internal/domain"
)

// Request модели

// PersonRequest контакт со всеми дочерними записями
type PersonRequest struct {
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Company   *string          `json:"company,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
	Emails    []EmailPayload   `json:"emails"`
	Phones    []PhonePayload   `json:"phones"`
	Addresses []AddressPayload `json:"addresses"`
}

type EmailPayload struct {
	Email     string `json:"email"`
	Label     string `json:"label"`
	IsPrimary bool   `json:"isPrimary"`
}

type PhonePayload struct {
	Number    string `json:"number"`
	Label     string `json:"label"`
	IsPrimary bool   `json:"isPrimary"`
}

type AddressPayload struct {
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Label      string `json:"label"`
}

// ToDomain конвертирует request в domain модель
func (r *PersonRequest) ToDomain(id int64) domain.Person {
	p := domain.Person{
		ID:        id,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Company:   r.Company,
		Notes:     r.Notes,
		Emails:    make([]domain.PersonEmail, 0, len(r.Emails)),
		Phones:    make([]domain.PersonPhone, 0, len(r.Phones)),
		Addresses: make([]domain.PersonAddress, 0, len(r.Addresses)),
	}
	for _, e := range r.Emails {
		p.Emails = append(p.Emails, domain.PersonEmail{Email: e.Email, Label: e.Label, IsPrimary: e.IsPrimary})
	}
	for _, ph := range r.Phones {
		p.Phones = append(p.Phones, domain.PersonPhone{Phone: ph.Number, Label: ph.Label, IsPrimary: ph.IsPrimary})
	}
	for _, a := range r.Addresses {
		p.Addresses = append(p.Addresses, domain.PersonAddress{
			Street: a.Street, PostalCode: a.PostalCode, City: a.City, Country: a.Country, Label: a.Label,
		})
	}
	return p
}

// Response модели

// PersonResponse контакт
type PersonResponse struct {
	ID int64 `json:"id"`
	PersonRequest
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

// FromDomainPerson конвертирует domain модель в response
func FromDomainPerson(p *domain.Person) *PersonResponse {
	resp := &PersonResponse{
		ID: p.ID,
		PersonRequest: PersonRequest{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Company:   p.Company,
			Notes:     p.Notes,
			Emails:    make([]EmailPayload, 0, len(p.Emails)),
			Phones:    make([]PhonePayload, 0, len(p.Phones)),
			Addresses: make([]AddressPayload, 0, len(p.Addresses)),
		},
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
	for _, e := range p.Emails {
		resp.Emails = append(resp.Emails, EmailPayload{Email: e.Email, Label: e.Label, IsPrimary: e.IsPrimary})
	}
	for _, ph := range p.Phones {
		resp.Phones = append(resp.Phones, PhonePayload{Number: ph.Phone, Label: ph.Label, IsPrimary: ph.IsPrimary})
	}
	for _, a := range p.Addresses {
		resp.Addresses = append(resp.Addresses, AddressPayload{
			Street: a.Street, PostalCode: a.PostalCode, City: a.City, Country: a.Country, Label: a.Label,
		})
	}
	if p.UpdatedAt != nil {
		updated := p.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}
