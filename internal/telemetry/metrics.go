package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики конвейера доставки. Экспортируются через /metrics
// (promhttp в main).
var (
	// MessagesPublished — сколько сообщений опубликовано, по очередям.
	MessagesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_messages_published_total",
		Help: "Messages published to the broker.",
	}, []string{"queue"})

	// MessagesConsumed — сколько сообщений успешно обработано (ack),
	// по очередям.
	MessagesConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_messages_consumed_total",
		Help: "Messages acknowledged after successful handling.",
	}, []string{"queue"})

	// HandlerFailures — ошибки обработчиков (nack), по очередям.
	// При requeue одно и то же сообщение может учитываться многократно.
	HandlerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_handler_failures_total",
		Help: "Handler failures resulting in nack.",
	}, []string{"queue"})

	// EmailsSent — успешно отправленные письма, по типам.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsletter_emails_sent_total",
		Help: "Emails handed to the SMTP transport.",
	}, []string{"kind"})

	// FanOutMessages — сколько писем породил fan-out одной статьи.
	FanOutMessages = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "newsletter_fanout_messages",
		Help:    "Per-article fan-out size (subscriber count).",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
)
