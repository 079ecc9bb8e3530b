package domain

import (
	"encoding/json"
	"fmt"
)

// Kind — тип сообщения в очереди.
type Kind string

// Типы сообщений.
const (
	KindArticle Kind = "ARTICLE"
	KindWelcome Kind = "WELCOME"
)

// Envelope — wire-формат сообщения: {"type": "...", "data": {...}}.
//
// Это контракт с app-server'ом (внешний продюсер), поэтому формат
// фиксирован: UTF-8 JSON, поле type определяет схему data.
type Envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ArticleEvent — событие "статья опубликована" (очередь articles).
//
// AuthorName заполняется не продюсером, а Article Worker'ом при fan-out
// (продюсер знает только ID, имя автора резолвится из БД).
type ArticleEvent struct {
	ArticleID    int64  `json:"articleId"`
	NewsletterID int64  `json:"newsletterId"`
	AuthorName   string `json:"authorName,omitempty"`
}

// MailMessage — декодированное сообщение почтовой очереди.
//
// Закрытый sum type: ровно один case на каждый Kind. Декодирование
// происходит на границе очереди, дальше по коду ходят типизированные
// значения, а не map[string]any.
type MailMessage interface {
	Kind() Kind

	// Recipient — адрес получателя письма.
	Recipient() string
}

// ArticleMail — персональная копия события ARTICLE для одного подписчика.
// Создаётся Article Worker'ом: исходные поля статьи + email подписчика
// + имя автора.
type ArticleMail struct {
	ArticleID    int64  `json:"articleId"`
	NewsletterID int64  `json:"newsletterId"`
	AuthorName   string `json:"authorName"`
	Email        string `json:"email"`
}

// WelcomeMail — приветственное письмо при подписке.
type WelcomeMail struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (ArticleMail) Kind() Kind { return KindArticle }
func (WelcomeMail) Kind() Kind { return KindWelcome }

func (m ArticleMail) Recipient() string { return m.Email }
func (m WelcomeMail) Recipient() string { return m.Email }

// EncodeArticleEvent сериализует событие статьи в Envelope.
func EncodeArticleEvent(ev ArticleEvent) ([]byte, error) {
	return encode(KindArticle, ev)
}

// EncodeMail сериализует почтовое сообщение в Envelope.
func EncodeMail(m MailMessage) ([]byte, error) {
	return encode(m.Kind(), m)
}

func encode(kind Kind, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal data: %w", err)
	}

	body, err := json.Marshal(Envelope{Type: kind, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return body, nil
}

// DecodeArticleEvent разбирает сообщение очереди articles.
func DecodeArticleEvent(body []byte) (ArticleEvent, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ArticleEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if env.Type != KindArticle {
		return ArticleEvent{}, fmt.Errorf("%w: %q on articles queue", ErrUnknownKind, env.Type)
	}

	var ev ArticleEvent
	if err := json.Unmarshal(env.Data, &ev); err != nil {
		return ArticleEvent{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return ev, nil
}

// DecodeMail разбирает сообщение почтовой очереди в типизированный вариант.
func DecodeMail(body []byte) (MailMessage, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case KindArticle:
		var m ArticleMail
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return m, nil

	case KindWelcome:
		var m WelcomeMail
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
}
