package mq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/newsletter-email-server/internal/telemetry"
)

// Handler — обработчик одного сообщения.
//
// Контракт подтверждения:
//   - nil           — сообщение ack (удаляется из очереди)
//   - ErrReject     — nack без requeue (сообщение выбрасывается)
//   - другая ошибка — nack согласно RequeuePolicy
//
// Ack происходит только после возврата обработчика без ошибки —
// это и есть механизм at-least-once: упавший обработчик оставляет
// сообщение в очереди, брокер доставит его снова.
type Handler func(ctx context.Context, d *Delivery) error

// Delivery — одно доставленное сообщение.
type Delivery struct {
	// Body — сырое тело сообщения. Декодируется обработчиком:
	// схема зависит от очереди.
	Body []byte

	// Queue — очередь, из которой пришло сообщение.
	Queue Queue

	// Raw — низкоуровневая amqp-доставка.
	Raw amqp.Delivery
}

// RequeuePolicy — политика повторной доставки при ошибке обработчика.
//
// Requeue=true означает неограниченный redelivery: лимита попыток и
// dead-letter-очереди нет, перманентно падающее сообщение будет
// доставляться бесконечно. Политика вынесена в явное значение, чтобы
// ограничение можно было добавить конфигурацией, а не переписыванием.
type RequeuePolicy struct {
	Requeue bool
}

// DefaultRequeuePolicy — requeue при любой ошибке обработчика.
func DefaultRequeuePolicy() RequeuePolicy {
	return RequeuePolicy{Requeue: true}
}

// ConsumerConfig — конфигурация Consumer.
type ConsumerConfig struct {
	// Queue — имя очереди.
	Queue Queue

	// Handler — обработчик сообщений.
	Handler Handler

	// Requeue — политика повторной доставки.
	Requeue RequeuePolicy

	// Prefetch — сколько неподтверждённых сообщений брокер отдаёт
	// consumer'у (default: 1).
	Prefetch int

	// WorkerID — номер воркера для логов (конкурирующие consumer'ы
	// одной очереди различаются только им).
	WorkerID int
}

// Consumer потребляет сообщения из одной очереди поверх выделенного канала.
// Несколько Consumer'ов одной очереди конкурируют за сообщения — брокер
// распределяет их между живыми consumer'ами.
type Consumer struct {
	ch       *Channel
	logger   *slog.Logger
	queue    Queue
	handler  Handler
	requeue  RequeuePolicy
	prefetch int
	workerID int
}

// NewConsumer создаёт Consumer.
func NewConsumer(ch *Channel, logger *slog.Logger, cfg ConsumerConfig) *Consumer {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}

	return &Consumer{
		ch:       ch,
		logger:   logger.With("queue", cfg.Queue, "worker", cfg.WorkerID),
		queue:    cfg.Queue,
		handler:  cfg.Handler,
		requeue:  cfg.Requeue,
		prefetch: prefetch,
		workerID: cfg.WorkerID,
	}
}

// Start объявляет очередь, подписывается и обрабатывает сообщения до
// отмены контекста или закрытия канала доставки.
func (c *Consumer) Start(ctx context.Context) error {
	// Consumer объявляет очередь так же, как продюсер: порядок их
	// старта не имеет значения.
	if err := declareQueue(c.ch.ch, c.queue); err != nil {
		return err
	}

	if err := c.ch.ch.Qos(c.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := c.ch.ch.Consume(
		string(c.queue), // queue
		"",              // consumer tag (auto-generated)
		false,           // auto-ack (ack вручную, после обработчика)
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("consumer started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-deliveries:
			if !ok {
				// Канал доставки закрылся — разрыв на уровне канала
				// или соединения. Поднимаем наверх: супервизор
				// завершит процесс.
				return fmt.Errorf("deliveries channel closed for %s", c.queue)
			}

			c.handleDelivery(ctx, raw)
		}
	}
}

// handleDelivery обрабатывает одно сообщение и подтверждает его по
// контракту Handler.
func (c *Consumer) handleDelivery(ctx context.Context, raw amqp.Delivery) {
	d := &Delivery{
		Body:  raw.Body,
		Queue: c.queue,
		Raw:   raw,
	}

	err := c.handler(ctx, d)

	switch {
	case err == nil:
		if ackErr := raw.Ack(false); ackErr != nil {
			c.logger.Error("ack failed", "message_id", raw.MessageId, "error", ackErr)
			return
		}
		telemetry.MessagesConsumed.WithLabelValues(string(c.queue)).Inc()

	case errors.Is(err, ErrReject):
		c.logger.Error("rejecting message",
			"message_id", raw.MessageId,
			"error", err,
		)
		raw.Nack(false, false)
		telemetry.HandlerFailures.WithLabelValues(string(c.queue)).Inc()

	default:
		c.logger.Error("handler failed",
			"message_id", raw.MessageId,
			"requeue", c.requeue.Requeue,
			"error", err,
		)
		raw.Nack(false, c.requeue.Requeue)
		telemetry.HandlerFailures.WithLabelValues(string(c.queue)).Inc()
	}
}
