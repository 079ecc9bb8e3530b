// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — соединение: ограниченный retry при старте,
//     фатальный разрыв в рантайме
//   - channel.go    — канал: один на логическую роль
//   - queues.go     — имена очередей, идемпотентное объявление
//   - publisher.go  — публикация persistent-сообщений
//   - consumer.go   — потребление с ручным ack по контракту Handler
//
// Очереди:
//   - articles — события публикации статей (consumer: Article Worker)
//   - emails   — письма к отправке (consumer: Mail Worker)
//
// Гарантии доставки: at-least-once. Очереди и сообщения durable,
// ack — только после успешной обработки. Дубликаты при redelivery
// допустимы и ожидаемы; дедупликации нет.
//
// Политика соединения: повторы с фиксированным интервалом только при
// старте процесса. Разрыв установленного соединения фатален — процесс
// завершается, рестарт выполняет внешний супервизор.
package mq
