// Package domain содержит типы сообщений и записей платформы.
//
// Сообщения очередей сериализуются как Envelope ({"type", "data"}) и
// декодируются на границе очереди в типизированные значения:
//
//   - ArticleEvent — событие публикации статьи (очередь articles)
//   - ArticleMail  — персональная копия статьи для подписчика (очередь emails)
//   - WelcomeMail  — приветственное письмо при подписке (очередь emails)
//
// MailMessage — закрытый sum type над сообщениями почтовой очереди:
// один case на каждый Kind, switch по типу вместо диспетчеризации
// по строковому полю.
package domain
