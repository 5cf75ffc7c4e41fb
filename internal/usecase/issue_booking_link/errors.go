package issue_booking_link

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("issue_booking_link: invalid input data")

	// ErrAppointmentTypeNotFound возвращается, когда тип встречи не найден или неактивен
	ErrAppointmentTypeNotFound = errors.New("issue_booking_link: appointment type not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("issue_booking_link: internal error")
)
