package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MangoMods-code/telegram-bot/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds the OpenTelemetry providers and the process logger.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Logger         *slog.Logger
}

// NewTelemetry initializes tracing and metrics. When export is disabled
// in config the providers are created without exporters, so spans and
// measurements are still produced but go nowhere (the Prometheus
// endpoint keeps working either way).
func NewTelemetry(cfg *config.OTLPConfig) (*Telemetry, error) {
	logger := initLogger(cfg)

	if !cfg.Enabled {
		tp := sdktrace.NewTracerProvider()
		mp, err := initPrometheusMeterProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
		}
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		logger.Info("Telemetry initialized without OTLP export")
		return &Telemetry{TracerProvider: tp, MeterProvider: mp, Logger: logger}, nil
	}

	logger.Info("Initializing OpenTelemetry",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("service_name", cfg.ServiceName),
	)

	tp, err := initTracerProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}
	otel.SetTracerProvider(tp)

	mp, err := initMeterProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}
	otel.SetMeterProvider(mp)

	logger.Info("OpenTelemetry initialized (OTLP + Prometheus exporters)")
	return &Telemetry{TracerProvider: tp, MeterProvider: mp, Logger: logger}, nil
}

// Shutdown gracefully shuts down all telemetry components.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		return err
	}
	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown meter provider", slog.String("error", err.Error()))
		return err
	}
	return nil
}
