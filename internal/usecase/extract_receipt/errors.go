package extract_receipt

import "errors"

var (
	// ErrInvalidInput возвращается при пустом файле или неподдерживаемом типе
	ErrInvalidInput = errors.New("extract_receipt: invalid input data")

	// ErrFileTooLarge возвращается, когда файл превышает допустимый размер
	ErrFileTooLarge = errors.New("extract_receipt: file is too large")

	// ErrExtractorUnavailable возвращается, когда сервис распознавания недоступен
	ErrExtractorUnavailable = errors.New("extract_receipt: extraction service unavailable")

	// ErrExtractionFailed возвращается, когда ответ модели не удалось разобрать
	ErrExtractionFailed = errors.New("extract_receipt: receipt could not be read")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("extract_receipt: internal error")
)
