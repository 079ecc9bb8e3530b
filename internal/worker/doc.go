// Package worker — два этапа конвейера доставки писем.
//
// # Обзор
//
// ## Article Worker
//
// Потребляет события "статья опубликована" из очереди articles,
// резолвит подписчиков и автора рассылки через Directory и публикует
// в очередь emails по одному письму на подписчика (fan-out).
// Исходное событие подтверждается только после того, как все
// per-subscriber публикации прошли без ошибки.
//
// ## Mail Worker
//
// Потребляет письма из очереди emails, рендерит шаблон по типу
// сообщения и отправляет через SMTP-транспорт. Ack — после успешной
// отправки.
//
// # Конкурентность
//
// Несколько воркеров одной роли конкурируют за сообщения одной
// очереди; каждый consumer-цикл работает на собственном канале.
// Порядок обработки между воркерами не гарантируется и не требуется:
// письма независимы.
//
// # Ошибки
//
// Ошибка обработчика оставляет сообщение неподтверждённым — брокер
// доставит его снова (единственный механизм retry). Повторная
// доставка события статьи повторяет fan-out целиком, дубликаты писем
// допустимы. Только непарсящиеся сообщения и сообщения без шаблона
// отбрасываются (mq.ErrReject): их redelivery не исправит.
package worker
