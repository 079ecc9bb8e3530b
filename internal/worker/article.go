package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shaiso/newsletter-email-server/internal/domain"
	"github.com/shaiso/newsletter-email-server/internal/mq"
	"github.com/shaiso/newsletter-email-server/internal/telemetry"
)

// Directory — узкий интерфейс доступа к данным платформы.
// Реляционное хранилище — внешний коллаборатор; production-реализация
// живёт в internal/repo, тесты подставляют фейк.
type Directory interface {
	// FetchSubscribers возвращает подписчиков рассылки.
	// repo.ErrNotFound, если рассылка не существует; рассылка без
	// подписчиков — пустой срез.
	FetchSubscribers(ctx context.Context, newsletterID int64) ([]domain.Subscriber, error)

	// FetchAuthor возвращает автора рассылки.
	// repo.ErrNotFound, если рассылка или автор не существуют.
	FetchAuthor(ctx context.Context, newsletterID int64) (domain.Author, error)
}

// MailPublisher — то, чем Article Worker публикует письма при fan-out.
type MailPublisher interface {
	PublishMail(ctx context.Context, m domain.MailMessage) error
}

// ArticleWorker разворачивает событие "статья опубликована" в N писем —
// по одному на подписчика рассылки.
type ArticleWorker struct {
	dir    Directory
	pub    MailPublisher
	logger *slog.Logger
}

// NewArticleWorker создаёт ArticleWorker с номером id для логов.
func NewArticleWorker(dir Directory, pub MailPublisher, id int, logger *slog.Logger) *ArticleWorker {
	return &ArticleWorker{
		dir:    dir,
		pub:    pub,
		logger: telemetry.WithWorker(logger, "article", id),
	}
}

// Handle — обработчик сообщения очереди articles.
//
// Ошибка резолва подписчиков/автора или любой отдельной публикации
// оставляет событие неподтверждённым: брокер доставит его снова и
// fan-out повторится целиком. Подписчики, уже получившие копию,
// получат дубликат — принятый компромисс at-least-once, дедупликации
// нет.
func (w *ArticleWorker) Handle(ctx context.Context, d *mq.Delivery) error {
	ev, err := domain.DecodeArticleEvent(d.Body)
	if err != nil {
		// Непарсящееся тело не исправится повторной доставкой.
		return fmt.Errorf("%w: %v", mq.ErrReject, err)
	}

	logger := telemetry.WithNewsletterID(w.logger, ev.NewsletterID)

	subscribers, err := w.dir.FetchSubscribers(ctx, ev.NewsletterID)
	if err != nil {
		return fmt.Errorf("fetch subscribers for newsletter %d: %w", ev.NewsletterID, err)
	}

	author, err := w.dir.FetchAuthor(ctx, ev.NewsletterID)
	if err != nil {
		return fmt.Errorf("fetch author for newsletter %d: %w", ev.NewsletterID, err)
	}

	for _, sub := range subscribers {
		m := domain.ArticleMail{
			ArticleID:    ev.ArticleID,
			NewsletterID: ev.NewsletterID,
			AuthorName:   author.Name,
			Email:        sub.Email,
		}

		if err := w.pub.PublishMail(ctx, m); err != nil {
			return fmt.Errorf("publish mail for %s: %w", sub.Email, err)
		}
	}

	telemetry.FanOutMessages.Observe(float64(len(subscribers)))

	logger.Info("article fanned out",
		"article_id", ev.ArticleID,
		"author", author.Name,
		"subscribers", len(subscribers),
	)

	return nil
}
