package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/newsletter-email-server/internal/domain"
)

// fakeWire записывает вызовы amqp-канала.
type fakeWire struct {
	declares   []declareCall
	declareErr error

	published   []amqp.Publishing
	routingKeys []string
	publishErr  error

	// order — последовательность операций ("declare", "publish")
	order []string
}

type declareCall struct {
	name    string
	durable bool
}

func (f *fakeWire) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.order = append(f.order, "declare")
	f.declares = append(f.declares, declareCall{name: name, durable: durable})
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	return amqp.Queue{Name: name}, nil
}

func (f *fakeWire) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.order = append(f.order, "publish")
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, msg)
	f.routingKeys = append(f.routingKeys, key)
	return nil
}

func newTestPublisher(w wire) *Publisher {
	return &Publisher{w: w, logger: testLogger()}
}

func TestPublisher_DeclaresBeforeEverySend(t *testing.T) {
	fw := &fakeWire{}
	p := newTestPublisher(fw)

	// Две публикации — два объявления, каждое до отправки
	for i := 0; i < 2; i++ {
		if err := p.Publish(context.Background(), QueueEmails, []byte(`{}`)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := []string{"declare", "publish", "declare", "publish"}
	if len(fw.order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, fw.order)
	}
	for i, op := range want {
		if fw.order[i] != op {
			t.Errorf("operation %d: expected %s, got %s", i, op, fw.order[i])
		}
	}

	for _, d := range fw.declares {
		if d.name != string(QueueEmails) {
			t.Errorf("expected queue %s, got %s", QueueEmails, d.name)
		}
		if !d.durable {
			t.Error("queue must be declared durable")
		}
	}
}

func TestPublisher_PersistentJSONMessage(t *testing.T) {
	fw := &fakeWire{}
	p := newTestPublisher(fw)

	body := []byte(`{"type":"WELCOME","data":{}}`)
	if err := p.Publish(context.Background(), QueueEmails, body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fw.published) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(fw.published))
	}

	msg := fw.published[0]
	if msg.DeliveryMode != amqp.Persistent {
		t.Error("message must be persistent")
	}
	if msg.ContentType != "application/json" {
		t.Errorf("expected application/json, got %s", msg.ContentType)
	}
	if msg.MessageId == "" {
		t.Error("message id must be set")
	}
	if string(msg.Body) != string(body) {
		t.Errorf("body mismatch: %s", msg.Body)
	}
	if fw.routingKeys[0] != string(QueueEmails) {
		t.Errorf("expected routing key %s, got %s", QueueEmails, fw.routingKeys[0])
	}
}

func TestPublisher_DeclareFailure(t *testing.T) {
	fw := &fakeWire{declareErr: errors.New("channel gone")}
	p := newTestPublisher(fw)

	err := p.Publish(context.Background(), QueueArticles, []byte(`{}`))
	if !errors.Is(err, ErrPublish) {
		t.Errorf("expected ErrPublish, got %v", err)
	}
	// Отправки после неудачного объявления быть не должно
	for _, op := range fw.order {
		if op == "publish" {
			t.Error("publish must not happen after declare failure")
		}
	}
}

func TestPublisher_SendFailure(t *testing.T) {
	fw := &fakeWire{publishErr: errors.New("broken pipe")}
	p := newTestPublisher(fw)

	err := p.Publish(context.Background(), QueueArticles, []byte(`{}`))
	if !errors.Is(err, ErrPublish) {
		t.Errorf("expected ErrPublish, got %v", err)
	}
}

func TestPublisher_PublishMail_WrapsEnvelope(t *testing.T) {
	fw := &fakeWire{}
	p := newTestPublisher(fw)

	m := domain.WelcomeMail{Name: "Ann", Email: "ann@x.com"}
	if err := p.PublishMail(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fw.routingKeys[0] != string(QueueEmails) {
		t.Errorf("welcome mail must go to %s, got %s", QueueEmails, fw.routingKeys[0])
	}

	var env domain.Envelope
	if err := json.Unmarshal(fw.published[0].Body, &env); err != nil {
		t.Fatalf("body should be an envelope: %v", err)
	}
	if env.Type != domain.KindWelcome {
		t.Errorf("expected type WELCOME, got %s", env.Type)
	}
}

func TestPublisher_PublishArticlePublished(t *testing.T) {
	fw := &fakeWire{}
	p := newTestPublisher(fw)

	ev := domain.ArticleEvent{ArticleID: 42, NewsletterID: 7}
	if err := p.PublishArticlePublished(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fw.routingKeys[0] != string(QueueArticles) {
		t.Errorf("article event must go to %s, got %s", QueueArticles, fw.routingKeys[0])
	}

	var env domain.Envelope
	if err := json.Unmarshal(fw.published[0].Body, &env); err != nil {
		t.Fatalf("body should be an envelope: %v", err)
	}
	if env.Type != domain.KindArticle {
		t.Errorf("expected type ARTICLE, got %s", env.Type)
	}
}
