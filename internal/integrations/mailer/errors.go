package mailer

import "errors"

var (
	// ErrDisabled возвращается, когда отправка почты выключена в конфигурации
	ErrDisabled = errors.New("mailer: mail is disabled")

	// ErrBuildMessage возвращается при ошибке сборки письма
	ErrBuildMessage = errors.New("mailer: failed to build message")

	// ErrSend возвращается при ошибке отправки через SMTP
	ErrSend = errors.New("mailer: failed to send message")
)
