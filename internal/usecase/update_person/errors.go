package update_person

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_person: invalid input data")

	// ErrPersonNotFound возвращается, когда контакт не найден
	ErrPersonNotFound = errors.New("update_person: person not found")

	// ErrDuplicateContact возвращается, когда email или телефон уже принадлежит другому контакту
	ErrDuplicateContact = errors.New("update_person: email or phone already belongs to another person")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_person: internal error")
)
