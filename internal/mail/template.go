package mail

import (
	"fmt"
	"strings"

	"github.com/shaiso/newsletter-email-server/internal/domain"
)

// Template — шаблон письма для одного типа сообщения.
// Subject и Body содержат именованные плейсхолдеры: {{author}}, {{url}},
// {{name}}. Подстановка буквальная (strings.Replacer), не text/template:
// плейсхолдеры — фиксированный контракт, нераспознанные токены остаются
// в тексте как есть.
type Template struct {
	Subject string
	Body    string
}

// DefaultTemplates — фиксированная таблица шаблонов по типу сообщения.
func DefaultTemplates() map[domain.Kind]Template {
	return map[domain.Kind]Template{
		domain.KindArticle: {
			Subject: "{{author}} just published a new article!",
			Body: `<h2>{{author}} just published a new article</h2>
<p>A fresh article from {{author}} is waiting for you.</p>
<p><a href="{{url}}">Read it now</a></p>`,
		},
		domain.KindWelcome: {
			Subject: "Welcome to the newsletter, {{name}}!",
			Body: `<h2>Hey {{name}}, welcome aboard!</h2>
<p>You are subscribed. We will email you whenever a new article is published.</p>`,
		},
	}
}

// Mail — готовое к отправке письмо.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Renderer рендерит письмо из типизированного сообщения очереди.
type Renderer struct {
	baseURL   string
	templates map[domain.Kind]Template
}

// NewRenderer создаёт Renderer. baseURL — адрес веб-клиента, из
// которого строятся ссылки на статьи.
func NewRenderer(clientBaseURL string) *Renderer {
	return &Renderer{
		baseURL:   strings.TrimRight(clientBaseURL, "/"),
		templates: DefaultTemplates(),
	}
}

// Render подставляет поля сообщения в шаблон его типа.
func (r *Renderer) Render(m domain.MailMessage) (Mail, error) {
	tmpl, ok := r.templates[m.Kind()]
	if !ok {
		return Mail{}, fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind())
	}

	var rep *strings.Replacer

	switch msg := m.(type) {
	case domain.ArticleMail:
		rep = strings.NewReplacer(
			"{{author}}", msg.AuthorName,
			"{{url}}", r.ArticleURL(msg.NewsletterID, msg.ArticleID),
		)

	case domain.WelcomeMail:
		rep = strings.NewReplacer(
			"{{name}}", msg.Name,
		)

	default:
		return Mail{}, fmt.Errorf("%w: %T", ErrUnknownKind, m)
	}

	return Mail{
		To:      m.Recipient(),
		Subject: rep.Replace(tmpl.Subject),
		Body:    rep.Replace(tmpl.Body),
	}, nil
}

// ArticleURL строит ссылку на статью в веб-клиенте.
func (r *Renderer) ArticleURL(newsletterID, articleID int64) string {
	return fmt.Sprintf("%s/newsletter/%d/article/%d", r.baseURL, newsletterID, articleID)
}
