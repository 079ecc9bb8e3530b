package mq

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/newsletter-email-server/internal/domain"
	"github.com/shaiso/newsletter-email-server/internal/telemetry"
)

// Publisher публикует сообщения в очереди поверх одного канала.
//
// Подтверждений доставки от брокера нет (publisher confirms не
// включены): успешный Publish означает лишь, что сообщение принято
// каналом, а не что оно дошло до очереди.
type Publisher struct {
	w      wire
	logger *slog.Logger
}

// NewPublisher создаёт Publisher поверх выделенного канала.
func NewPublisher(ch *Channel, logger *slog.Logger) *Publisher {
	return &Publisher{w: ch.ch, logger: logger}
}

// Publish идемпотентно объявляет durable-очередь и отправляет в неё
// persistent-сообщение.
//
// Очередь объявляется при каждой публикации, а не один раз: publish
// безопасен до старта любого consumer'а и после пересоздания очереди.
func (p *Publisher) Publish(ctx context.Context, q Queue, body []byte) error {
	if err := declareQueue(p.w, q); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	msgID := uuid.New().String()

	err := p.w.PublishWithContext(
		ctx,
		"",        // exchange (default)
		string(q), // routing key = имя очереди
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
			MessageId:    msgID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: send to %s: %v", ErrPublish, q, err)
	}

	telemetry.MessagesPublished.WithLabelValues(string(q)).Inc()

	p.logger.Debug("published message",
		"queue", q,
		"message_id", msgID,
		"bytes", len(body),
	)

	return nil
}

// PublishArticlePublished публикует событие "статья опубликована"
// в очередь articles. Это интерфейс продюсера для app-server'а.
func (p *Publisher) PublishArticlePublished(ctx context.Context, ev domain.ArticleEvent) error {
	body, err := domain.EncodeArticleEvent(ev)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return p.Publish(ctx, QueueArticles, body)
}

// PublishMail публикует письмо (любого типа) в очередь emails.
// Используется Article Worker'ом при fan-out.
func (p *Publisher) PublishMail(ctx context.Context, m domain.MailMessage) error {
	body, err := domain.EncodeMail(m)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return p.Publish(ctx, QueueEmails, body)
}

// PublishWelcome публикует приветственное письмо в очередь emails.
// Это интерфейс продюсера для app-server'а (вызывается при подписке).
func (p *Publisher) PublishWelcome(ctx context.Context, m domain.WelcomeMail) error {
	return p.PublishMail(ctx, m)
}
