package gemini

import "errors"

var (
	// ErrUnavailable возвращается, когда модель недоступна или вернула ошибку
	ErrUnavailable = errors.New("gemini client: model unavailable")

	// ErrInvalidResponse возвращается, когда ответ модели не удалось разобрать
	ErrInvalidResponse = errors.New("gemini client: invalid model response")
)
