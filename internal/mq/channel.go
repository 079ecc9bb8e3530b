package mq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel — лёгкий независимо падающий канал поверх общего соединения.
//
// Операции amqp-канала не безопасны для конкурентного использования,
// поэтому канал принадлежит ровно одной логической роли (одному
// consumer-циклу или одному продюсеру) и не разделяется.
type Channel struct {
	ch *amqp.Channel
}

// Close закрывает канал. Соединение при этом остаётся живым.
func (c *Channel) Close() error {
	return c.ch.Close()
}
