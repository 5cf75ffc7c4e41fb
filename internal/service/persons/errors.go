package persons

import "errors"

var (
	// ErrPersonNotFound возвращается, когда контакт не найден
	ErrPersonNotFound = errors.New("person not found")

	// ErrDuplicateContact возвращается, когда email или телефон уже принадлежит другому контакту
	ErrDuplicateContact = errors.New("email or phone already belongs to another person")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
