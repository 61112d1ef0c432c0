// Package observability wires OpenTelemetry metrics to a Prometheus
// exporter and defines the instruments the processing pipeline records.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"pasarcli/pkg/contracts/domain"
)

const (
	ServiceName    = "pasar-normalizer"
	ServiceVersion = "1.0.0"
	MeterName      = "pasarcli"
)

// Providers holds the metric provider and the handler that serves /metrics.
type Providers struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Metrics        *Metrics
}

// Initialize sets up the Prometheus-backed meter provider and registers it
// globally.
func Initialize(logger *slog.Logger) (*Providers, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	meter := mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion))
	metrics, err := newMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}

	logger.Info("metrics initialized", slog.String("exporter", "prometheus"))

	return &Providers{
		MeterProvider:  mp,
		Meter:          meter,
		PrometheusHTTP: promhttp.Handler(),
		Metrics:        metrics,
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.MeterProvider == nil {
		return nil
	}
	return p.MeterProvider.Shutdown(ctx)
}

// Metrics bundles the pipeline instruments.
type Metrics struct {
	BatchesTotal  metric.Int64Counter
	BatchDuration metric.Float64Histogram
	RowsIn        metric.Int64Counter
	RowsOut       metric.Int64Counter
	RowsDeleted   metric.Int64Counter
	UploadBytes   metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	batches, err := meter.Int64Counter(
		"batches_processed_total",
		metric.WithDescription("Total number of processed batches"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"batch_duration_seconds",
		metric.WithDescription("Batch processing duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rowsIn, err := meter.Int64Counter(
		"batch_input_rows_total",
		metric.WithDescription("Total input rows across batches"),
	)
	if err != nil {
		return nil, err
	}

	rowsOut, err := meter.Int64Counter(
		"batch_output_rows_total",
		metric.WithDescription("Total output rows across batches"),
	)
	if err != nil {
		return nil, err
	}

	rowsDeleted, err := meter.Int64Counter(
		"batch_deleted_rows_total",
		metric.WithDescription("Total rows removed by the cancellation filter"),
	)
	if err != nil {
		return nil, err
	}

	uploadBytes, err := meter.Int64Counter(
		"upload_bytes_total",
		metric.WithDescription("Total bytes received in upload requests"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		BatchesTotal:  batches,
		BatchDuration: duration,
		RowsIn:        rowsIn,
		RowsOut:       rowsOut,
		RowsDeleted:   rowsDeleted,
		UploadBytes:   uploadBytes,
	}, nil
}

// RecordBatch records the outcome of one batch run.
func (m *Metrics) RecordBatch(ctx context.Context, id domain.MarketplaceID, kind string, stats domain.BatchStats, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("marketplace", string(id)),
		attribute.String("kind", kind),
		attribute.Bool("success", err == nil),
	)
	m.BatchesTotal.Add(ctx, 1, attrs)
	m.BatchDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.RowsIn.Add(ctx, int64(stats.InputRows), attrs)
	m.RowsOut.Add(ctx, int64(stats.OutputRows), attrs)
	m.RowsDeleted.Add(ctx, int64(stats.DeletedRows), attrs)
}

// RecordUpload records the size of an accepted upload.
func (m *Metrics) RecordUpload(ctx context.Context, size int64) {
	if m == nil {
		return
	}
	m.UploadBytes.Add(ctx, size)
}
