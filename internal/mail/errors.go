package mail

import "errors"

// Ошибки почтового слоя.
var (
	// ErrUnknownKind — нет шаблона для данного типа сообщения.
	ErrUnknownKind = errors.New("no template for message kind")

	// ErrTransport — SMTP-транспорт не смог отправить письмо
	// (аутентификация, сеть, отказ сервера).
	ErrTransport = errors.New("mail transport failed")
)
