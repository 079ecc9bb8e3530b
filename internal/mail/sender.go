package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Sender — исходящий почтовый транспорт.
// Реализации должны быть безопасны для конкурентных независимых вызовов.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPConfig — параметры SMTP-транспорта.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// From — адрес отправителя, например
	// "Newsletter Platform <noreply@example.com>".
	From string
}

// SMTPSender отправляет письма через SMTP с TLS.
type SMTPSender struct {
	client *gomail.Client
	from   string
	logger *slog.Logger
}

// NewSMTPSender создаёт SMTP-транспорт.
func NewSMTPSender(cfg SMTPConfig, logger *slog.Logger) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}

	// 465 — implicit TLS, остальные порты — STARTTLS.
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPSender{
		client: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// Send отправляет письмо получателю. Тело оборачивается в базовую
// HTML-рамку платформы.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	framed, err := wrapInFrame(htmlBody)
	if err != nil {
		return fmt.Errorf("%w: frame: %v", ErrTransport, err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("%w: from: %v", ErrTransport, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%w: to: %v", ErrTransport, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, framed)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	s.logger.Debug("message sent", "to", to, "subject", subject)

	return nil
}
