package mq

import "errors"

// Ошибки брокерного слоя.
var (
	// ErrConnect — не удалось установить соединение с RabbitMQ
	// за отведённое число попыток. Фатальна для старта процесса.
	ErrConnect = errors.New("broker connection failed")

	// ErrChannel — брокер отклонил создание канала или соединение
	// уже не живо.
	ErrChannel = errors.New("channel creation failed")

	// ErrPublish — не удалось объявить очередь или отправить сообщение.
	// Вызывающий не должен считать сообщение доставленным.
	ErrPublish = errors.New("publish failed")

	// ErrReject — сигнал от обработчика: сообщение невозможно обработать
	// ни сейчас, ни при повторной доставке (например, не парсится).
	// Consumer делает nack без requeue.
	ErrReject = errors.New("message rejected")
)
