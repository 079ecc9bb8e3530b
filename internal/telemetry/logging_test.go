package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

// logAttrs рендерит одну запись логгера и возвращает её атрибуты.
func logAttrs(t *testing.T, logger *slog.Logger, buf *bytes.Buffer) map[string]any {
	t.Helper()

	logger.Info("test entry")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log record should be valid JSON: %v", err)
	}
	return record
}

func TestWithWorker(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	record := logAttrs(t, WithWorker(logger, "mail", 3), &buf)

	if record["role"] != "mail" {
		t.Errorf("expected role=mail, got %v", record["role"])
	}
	if record["worker"] != float64(3) {
		t.Errorf("expected worker=3, got %v", record["worker"])
	}
}

func TestWithRecipient(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	record := logAttrs(t, WithRecipient(logger, "ann@x.com"), &buf)

	if record["recipient"] != "ann@x.com" {
		t.Errorf("expected recipient=ann@x.com, got %v", record["recipient"])
	}
}

func TestWithNewsletterID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	record := logAttrs(t, WithNewsletterID(logger, 7), &buf)

	if record["newsletter_id"] != float64(7) {
		t.Errorf("expected newsletter_id=7, got %v", record["newsletter_id"])
	}
}
