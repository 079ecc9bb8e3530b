// Package telemetry — structured logging (slog) и prometheus-метрики
// конвейера доставки.
package telemetry
