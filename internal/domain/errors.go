package domain

import "errors"

// Ошибки декодирования сообщений.
var (
	// ErrMalformed — тело сообщения не является валидным JSON
	// ожидаемой схемы.
	ErrMalformed = errors.New("malformed message")

	// ErrUnknownKind — поле type не соответствует ни одному
	// известному типу сообщения.
	ErrUnknownKind = errors.New("unknown message kind")
)
