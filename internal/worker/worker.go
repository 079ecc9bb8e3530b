package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shaiso/newsletter-email-server/internal/mail"
	"github.com/shaiso/newsletter-email-server/internal/mq"
)

// Default configuration values.
const (
	defaultWorkers  = 1
	defaultPrefetch = 1
)

// Config — конфигурация Service.
type Config struct {
	// Conn — общее соединение с брокером. Каналы создаются из него,
	// по одному на consumer-цикл.
	Conn *mq.Connection

	// Directory — доступ к данным платформы (подписчики, авторы).
	Directory Directory

	// Renderer — рендеринг писем.
	Renderer *mail.Renderer

	// Sender — исходящий почтовый транспорт.
	Sender mail.Sender

	// ArticleWorkers — число конкурирующих consumer'ов очереди
	// articles (default: 1).
	ArticleWorkers int

	// MailWorkers — число конкурирующих consumer'ов очереди emails
	// (default: 1).
	MailWorkers int

	// Requeue — политика повторной доставки при ошибке обработчика.
	// nil — requeue без ограничений (контракт at-least-once).
	Requeue *mq.RequeuePolicy

	// Prefetch — QoS prefetch на каждый consumer (default: 1).
	Prefetch int

	// Logger
	Logger *slog.Logger
}

// Service запускает оба этапа конвейера доставки: Article Worker'ы и
// Mail Worker'ы. Каждый consumer-цикл получает собственный канал;
// Article Worker публикует письма через publisher на своём же канале
// (один логический поток — публикация и потребление не конкурируют).
type Service struct {
	cfg     Config
	requeue mq.RequeuePolicy
	logger  *slog.Logger

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	fatalCh chan error
}

// New создаёт Service.
func New(cfg Config) *Service {
	if cfg.ArticleWorkers <= 0 {
		cfg.ArticleWorkers = defaultWorkers
	}
	if cfg.MailWorkers <= 0 {
		cfg.MailWorkers = defaultWorkers
	}
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = defaultPrefetch
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	requeue := mq.DefaultRequeuePolicy()
	if cfg.Requeue != nil {
		requeue = *cfg.Requeue
	}

	return &Service{
		cfg:     cfg,
		requeue: requeue,
		logger:  logger,
		fatalCh: make(chan error, 1),
	}
}

// Start создаёт каналы и запускает consumer-циклы обеих очередей.
func (s *Service) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 1; i <= s.cfg.ArticleWorkers; i++ {
		ch, err := s.cfg.Conn.Channel()
		if err != nil {
			return fmt.Errorf("article worker %d: %w", i, err)
		}

		pub := mq.NewPublisher(ch, s.logger)
		aw := NewArticleWorker(s.cfg.Directory, pub, i, s.logger)

		s.run(ctx, mq.NewConsumer(ch, s.logger, mq.ConsumerConfig{
			Queue:    mq.QueueArticles,
			Handler:  aw.Handle,
			Requeue:  s.requeue,
			Prefetch: s.cfg.Prefetch,
			WorkerID: i,
		}))
	}

	for i := 1; i <= s.cfg.MailWorkers; i++ {
		ch, err := s.cfg.Conn.Channel()
		if err != nil {
			return fmt.Errorf("mail worker %d: %w", i, err)
		}

		mw := NewMailWorker(s.cfg.Renderer, s.cfg.Sender, i, s.logger)

		s.run(ctx, mq.NewConsumer(ch, s.logger, mq.ConsumerConfig{
			Queue:    mq.QueueEmails,
			Handler:  mw.Handle,
			Requeue:  s.requeue,
			Prefetch: s.cfg.Prefetch,
			WorkerID: i,
		}))
	}

	s.logger.Info("workers started",
		"article_workers", s.cfg.ArticleWorkers,
		"mail_workers", s.cfg.MailWorkers,
	)

	return nil
}

// run запускает consumer-цикл в горутине. Ошибка цикла (закрытие
// канала доставки вне остановки) уходит в Fatal — супервизор на неё
// завершает процесс.
func (s *Service) run(ctx context.Context, c *mq.Consumer) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := c.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			select {
			case s.fatalCh <- err:
			default:
			}
		}
	}()
}

// Fatal возвращает канал с первой невосстановимой ошибкой consumer'ов.
func (s *Service) Fatal() <-chan error {
	return s.fatalCh
}

// Stop останавливает все consumer-циклы и дожидается их завершения.
func (s *Service) Stop() {
	s.logger.Info("stopping workers...")

	if s.cancel != nil {
		s.cancel()
	}

	s.wg.Wait()

	s.logger.Info("workers stopped")
}
