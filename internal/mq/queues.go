package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue — имя очереди.
type Queue string

// Имена очередей.
const (
	// QueueArticles — события публикации статей.
	// Продюсер: app-server. Consumer: Article Worker.
	QueueArticles Queue = "articles"

	// QueueEmails — письма к отправке.
	// Продюсеры: app-server (welcome), Article Worker (fan-out).
	// Consumer: Mail Worker.
	QueueEmails Queue = "emails"
)

// wire — операции amqp-канала, которые использует пакет.
// Выделен в интерфейс, чтобы публикацию можно было тестировать без брокера.
type wire interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// declareQueue идемпотентно объявляет durable-очередь.
// Объявляют обе стороны (продюсер и consumer), поэтому порядок их
// старта не имеет значения.
func declareQueue(w wire, q Queue) error {
	_, err := w.QueueDeclare(
		string(q), // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", q, err)
	}
	return nil
}

// DeclareQueues объявляет все очереди системы. Вызывается при старте
// процесса, но каждая публикация и каждый consumer объявляют свою
// очередь повторно — объявление идемпотентно.
func DeclareQueues(ch *Channel) error {
	for _, q := range []Queue{QueueArticles, QueueEmails} {
		if err := declareQueue(ch.ch, q); err != nil {
			return err
		}
	}
	return nil
}
