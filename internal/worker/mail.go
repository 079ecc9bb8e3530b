package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/newsletter-email-server/internal/domain"
	"github.com/shaiso/newsletter-email-server/internal/mail"
	"github.com/shaiso/newsletter-email-server/internal/mq"
	"github.com/shaiso/newsletter-email-server/internal/telemetry"
)

// MailWorker рендерит письмо по типу сообщения и отправляет его через
// исходящий транспорт.
type MailWorker struct {
	renderer *mail.Renderer
	sender   mail.Sender
	logger   *slog.Logger
}

// NewMailWorker создаёт MailWorker с номером id для логов.
func NewMailWorker(renderer *mail.Renderer, sender mail.Sender, id int, logger *slog.Logger) *MailWorker {
	return &MailWorker{
		renderer: renderer,
		sender:   sender,
		logger:   telemetry.WithWorker(logger, "mail", id),
	}
}

// Handle — обработчик сообщения очереди emails.
//
// Ack — только после успешной отправки. Ошибка транспорта оставляет
// сообщение неподтверждённым, брокер доставит его снова; возможна
// повторная отправка того же письма.
func (w *MailWorker) Handle(ctx context.Context, d *mq.Delivery) error {
	m, err := domain.DecodeMail(d.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", mq.ErrReject, err)
	}

	rendered, err := w.renderer.Render(m)
	if err != nil {
		// Нет шаблона для типа — redelivery не поможет.
		return fmt.Errorf("%w: %v", mq.ErrReject, err)
	}

	// Каждая попытка отправки логируется: воркер + получатель.
	logger := telemetry.WithRecipient(w.logger, rendered.To)
	logger.Info("dispatching email", "kind", m.Kind())

	if err := w.sender.Send(ctx, rendered.To, rendered.Subject, rendered.Body); err != nil {
		return fmt.Errorf("send to %s: %w", rendered.To, err)
	}

	telemetry.EmailsSent.WithLabelValues(string(m.Kind())).Inc()

	return nil
}
