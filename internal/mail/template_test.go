package mail

import (
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/newsletter-email-server/internal/domain"
)

func TestRender_Article(t *testing.T) {
	r := NewRenderer("https://example.com")

	m := domain.ArticleMail{
		ArticleID:    42,
		NewsletterID: 7,
		AuthorName:   "Jane",
		Email:        "sub@x.com",
	}

	rendered, err := r.Render(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rendered.To != "sub@x.com" {
		t.Errorf("expected recipient sub@x.com, got %s", rendered.To)
	}

	// {{author}} подставлен и в subject, и в body
	for _, s := range []string{rendered.Subject, rendered.Body} {
		if strings.Contains(s, "{{author}}") {
			t.Errorf("unreplaced {{author}} placeholder in %q", s)
		}
		if !strings.Contains(s, "Jane") {
			t.Errorf("expected author name in %q", s)
		}
	}

	// Ссылка строится из базового URL клиента
	wantURL := "https://example.com/newsletter/7/article/42"
	if !strings.Contains(rendered.Body, wantURL) {
		t.Errorf("expected link %s in body %q", wantURL, rendered.Body)
	}
	if strings.Contains(rendered.Body, "{{url}}") {
		t.Error("unreplaced {{url}} placeholder in body")
	}
}

func TestRender_Welcome(t *testing.T) {
	r := NewRenderer("https://example.com")

	rendered, err := r.Render(domain.WelcomeMail{Name: "Sam", Email: "sam@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rendered.To != "sam@x.com" {
		t.Errorf("expected recipient sam@x.com, got %s", rendered.To)
	}

	for _, s := range []string{rendered.Subject, rendered.Body} {
		if strings.Contains(s, "{{name}}") {
			t.Errorf("unreplaced {{name}} placeholder in %q", s)
		}
		if !strings.Contains(s, "Sam") {
			t.Errorf("expected subscriber name in %q", s)
		}
	}
}

func TestArticleURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"plain", "https://example.com", "https://example.com/newsletter/7/article/42"},
		{"trailing slash", "https://example.com/", "https://example.com/newsletter/7/article/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(tt.baseURL)
			if got := r.ArticleURL(7, 42); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// bogusMail — тип сообщения, которого нет в таблице шаблонов.
type bogusMail struct{}

func (bogusMail) Kind() domain.Kind { return domain.Kind("DIGEST") }
func (bogusMail) Recipient() string { return "nobody@x.com" }

func TestRender_UnknownKind(t *testing.T) {
	r := NewRenderer("https://example.com")

	_, err := r.Render(bogusMail{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestWrapInFrame(t *testing.T) {
	body := `<h2>Hello</h2><p><a href="https://example.com/x">link</a></p>`

	framed, err := wrapInFrame(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(framed, "<!DOCTYPE html>") {
		t.Error("frame should produce a full HTML document")
	}
	// Тело вставляется без экранирования — оно уже HTML
	if !strings.Contains(framed, body) {
		t.Errorf("frame should embed the body verbatim, got %q", framed)
	}
}
