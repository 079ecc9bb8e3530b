// Package mail — рендеринг писем и исходящий SMTP-транспорт.
//
// Renderer подставляет поля типизированного сообщения очереди в
// фиксированную таблицу шаблонов (по одному на Kind). SMTPSender
// оборачивает тело в базовую HTML-рамку и отправляет через
// wneessen/go-mail.
package mail
