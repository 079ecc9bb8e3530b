// Newsletter Email Server — асинхронный конвейер доставки писем.
//
// Процесс:
//   - Устанавливает соединение с RabbitMQ (ограниченный retry, иначе
//     старт прерывается)
//   - Запускает Article Worker'ы (fan-out статей по подписчикам)
//   - Запускает Mail Worker'ы (рендеринг и отправка через SMTP)
//   - Держит соединение открытым всё время жизни процесса
//
// Неожиданный разрыв соединения фатален: процесс завершается, рестарт
// выполняет внешний супервизор (частично живое состояние воркеров
// опаснее чистого рестарта).
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/newsletter-email-server/internal/config"
	"github.com/shaiso/newsletter-email-server/internal/mail"
	"github.com/shaiso/newsletter-email-server/internal/mq"
	"github.com/shaiso/newsletter-email-server/internal/repo"
	"github.com/shaiso/newsletter-email-server/internal/telemetry"
	"github.com/shaiso/newsletter-email-server/internal/worker"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting newsletter-email-server")

	cfg := config.Load()

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	directory := repo.NewNewsletterRepo(pool)

	// RabbitMQ: без соединения конвейер бессмыслен — после исчерпания
	// попыток процесс не стартует.
	conn, err := mq.Connect(ctx, cfg.RabbitURL, cfg.ConnRetry, logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Объявляем очереди заранее; продюсеры и consumer'ы объявят их
	// ещё раз, объявление идемпотентно.
	declareCh, err := conn.Channel()
	if err != nil {
		logger.Error("failed to create channel", "error", err)
		os.Exit(1)
	}
	if err := mq.DeclareQueues(declareCh); err != nil {
		logger.Error("failed to declare queues", "error", err)
		os.Exit(1)
	}
	declareCh.Close()

	// SMTP-транспорт
	sender, err := mail.NewSMTPSender(cfg.SMTP, logger)
	if err != nil {
		logger.Error("failed to create smtp sender", "error", err)
		os.Exit(1)
	}

	// Запускаем оба этапа конвейера
	svc := worker.New(worker.Config{
		Conn:           conn,
		Directory:      directory,
		Renderer:       mail.NewRenderer(cfg.ClientURL),
		Sender:         sender,
		ArticleWorkers: cfg.ArticleWorkers,
		MailWorkers:    cfg.MailWorkers,
		Requeue:        &cfg.Requeue,
		Logger:         logger,
	})

	if err := svc.Start(ctx); err != nil {
		logger.Error("failed to start workers", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !conn.IsLive() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("broker connection lost"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("listening", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Держим процесс до сигнала или невосстановимой ошибки.
	select {
	case <-ctx.Done():
		svc.Stop()
		logger.Info("newsletter-email-server stopped")

	case amqpErr := <-conn.NotifyClose():
		// Разрыв соединения в рантайме. Внутреннего reconnect нет —
		// завершаемся, супервизор процессов перезапустит сервис.
		logger.Error("RabbitMQ connection closed, shutting down", "error", amqpErr)
		os.Exit(1)

	case err := <-svc.Fatal():
		logger.Error("worker failed, shutting down", "error", err)
		os.Exit(1)
	}
}
