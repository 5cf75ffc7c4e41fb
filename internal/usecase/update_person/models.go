package update_person

import "github.com/archportal/booking-service/internal/domain"

// Request модель запроса на обновление контакта.
// Списки emails, телефонов и адресов заменяются целиком
type Request struct {
	Person domain.Person
}

// Response обновлённый контакт с дочерними записями
type Response struct {
	Person *domain.Person
}
