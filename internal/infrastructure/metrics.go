package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const meterName = "product-sales-forecasting"

// Metrics bundles the OpenTelemetry meter provider, the Prometheus scrape
// handler and the application instruments.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	logger   *slog.Logger

	// Handler serves the Prometheus exposition endpoint.
	Handler http.Handler

	AnalysesTotal    metric.Int64Counter
	AnalysisDuration metric.Float64Histogram
	UploadBytes      metric.Int64Counter
}

// NewMetrics initializes the meter provider backed by a dedicated Prometheus
// registry and creates the application instruments.
func NewMetrics(logger *slog.Logger) (*Metrics, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prom.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", meterName),
		)),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(meterName)

	m := &Metrics{
		provider: provider,
		logger:   logger,
		Handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	if m.AnalysesTotal, err = meter.Int64Counter("analyses_total",
		metric.WithDescription("Completed analysis runs by outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create analyses counter: %w", err)
	}

	if m.AnalysisDuration, err = meter.Float64Histogram("analysis_duration_seconds",
		metric.WithDescription("End-to-end duration of one analysis run"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	if m.UploadBytes, err = meter.Int64Counter("upload_bytes_total",
		metric.WithDescription("Bytes received in uploaded workbooks"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create upload counter: %w", err)
	}

	logger.Info("metrics initialized", slog.String("meter", meterName))
	return m, nil
}

// RecordAnalysis records one completed (or failed) analysis run.
func (m *Metrics) RecordAnalysis(ctx context.Context, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.AnalysesTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.AnalysisDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordUpload records the size of an accepted upload.
func (m *Metrics) RecordUpload(ctx context.Context, bytes int64) {
	if m == nil {
		return
	}
	m.UploadBytes.Add(ctx, bytes)
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
