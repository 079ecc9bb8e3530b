package telemetry

import (
	"log/slog"
	"os"
)

// LogLevel определяет уровень логирования из переменной окружения.
// Возможные значения: DEBUG, INFO, WARN, ERROR
// По умолчанию: INFO
func LogLevel() slog.Level {
	level := os.Getenv("LOG_LEVEL")
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger инициализирует глобальный логгер.
//
// Формат вывода определяется переменной LOG_FORMAT:
//   - "json" (по умолчанию) — JSON формат для production
//   - "text" — человекочитаемый формат для разработки
func SetupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     LogLevel(),
		AddSource: LogLevel() == slog.LevelDebug,
	}

	format := os.Getenv("LOG_FORMAT")
	if format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// WithWorker возвращает логгер с ролью и номером воркера.
func WithWorker(logger *slog.Logger, role string, id int) *slog.Logger {
	return logger.With("role", role, "worker", id)
}

// WithRecipient возвращает логгер с адресом получателя.
func WithRecipient(logger *slog.Logger, email string) *slog.Logger {
	return logger.With("recipient", email)
}

// WithNewsletterID возвращает логгер с добавленным newsletter_id.
func WithNewsletterID(logger *slog.Logger, id int64) *slog.Logger {
	return logger.With("newsletter_id", id)
}
