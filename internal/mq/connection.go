package mq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RetryPolicy — ограниченная политика повторов установления соединения:
// фиксированный интервал между попытками, без экспоненты.
//
// Политика применяется только при старте. После установления соединения
// повторного подключения внутри процесса нет: неожиданный разрыв фатален,
// перезапуск делегируется внешнему супервизору процессов.
type RetryPolicy struct {
	// Attempts — максимальное число попыток (минимум 1).
	Attempts int

	// Interval — пауза между попытками.
	Interval time.Duration
}

// DefaultRetryPolicy — значения по умолчанию для локальной разработки.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, Interval: 3 * time.Second}
}

// DialFunc устанавливает низкоуровневое соединение с брокером.
type DialFunc func(url string) (*amqp.Connection, error)

// Connection — живая сессия с RabbitMQ.
//
// Создаётся один раз при старте процесса и передаётся воркерам явно —
// никакого глобального состояния. Соединение разделяется всеми каналами;
// каналы между конкурентными потоками не разделяются.
type Connection struct {
	conn   *amqp.Connection
	logger *slog.Logger
}

// Connect устанавливает соединение с RabbitMQ согласно политике повторов.
// Возвращает ErrConnect после исчерпания попыток — вызывающий обязан
// прервать старт процесса.
func Connect(ctx context.Context, url string, policy RetryPolicy, logger *slog.Logger) (*Connection, error) {
	return connect(ctx, url, policy, amqp.Dial, logger)
}

func connect(ctx context.Context, url string, policy RetryPolicy, dial DialFunc, logger *slog.Logger) (*Connection, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := dial(url)
		if err == nil {
			logger.Info("connected to RabbitMQ", "attempt", attempt)
			return &Connection{conn: conn, logger: logger}, nil
		}

		lastErr = err
		logger.Warn("could not connect to RabbitMQ",
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(policy.Interval):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v", ErrConnect, attempts, lastErr)
}

// Channel открывает новый канал поверх соединения.
// Один канал на роль: продюсер API-слоя, Article Worker, Mail Worker
// получают каждый свой канал.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannel, err)
	}

	c.logger.Debug("channel created")

	return &Channel{ch: ch}, nil
}

// NotifyClose возвращает канал, в который придёт ошибка при неожиданном
// закрытии соединения. Супервизор слушает его и завершает процесс:
// частично живое состояние воркеров опаснее чистого рестарта.
func (c *Connection) NotifyClose() <-chan *amqp.Error {
	return c.conn.NotifyClose(make(chan *amqp.Error, 1))
}

// IsLive проверяет, живо ли соединение.
func (c *Connection) IsLive() bool {
	return c.conn != nil && !c.conn.IsClosed()
}

// Close закрывает соединение (и все каналы поверх него).
func (c *Connection) Close() error {
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("close connection: %w", err)
	}
	c.logger.Info("connection closed")
	return nil
}
