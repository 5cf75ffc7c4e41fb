package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrRangeTooLarge возвращается, когда запрошенный период превышает допустимый
	ErrRangeTooLarge = errors.New("date range is too large")

	// ErrAppointmentTypeNotFound возвращается, когда тип встречи не найден
	ErrAppointmentTypeNotFound = errors.New("appointment type not found")

	// ErrAdminUnavailable возвращается, когда в системе нет администратора, чьё расписание показывать
	ErrAdminUnavailable = errors.New("admin user unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
