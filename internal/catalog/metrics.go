package catalog

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/averlon/catalog-api/internal/domain/product"
)

// CreationMetrics is the immutable per-operation record emitted exactly
// once per Create call, on both the success and failure paths.
type CreationMetrics struct {
	OperationID        string
	ProductName        string
	SKU                string
	Category           product.Category
	ValidationDuration time.Duration
	PersistDuration    time.Duration
	TotalDuration      time.Duration
	Success            bool
	// ErrorReason carries the aggregated validation messages or the
	// fault description; empty on success.
	ErrorReason string
}

// MetricsSink receives creation metrics. Delivery is best-effort: a sink
// must never block the pipeline or fault it.
type MetricsSink interface {
	Record(ctx context.Context, m CreationMetrics)
}

// TelemetrySink records creation metrics on an OpenTelemetry meter and
// mirrors each record to the context logger.
type TelemetrySink struct {
	creations   metric.Int64Counter
	validateDur metric.Float64Histogram
	persistDur  metric.Float64Histogram
	totalDur    metric.Float64Histogram
}

// NewTelemetrySink registers the creation instruments on the given meter.
func NewTelemetrySink(meter metric.Meter) (*TelemetrySink, error) {
	creations, err := meter.Int64Counter("catalog.product.creations",
		metric.WithDescription("Product creation attempts by outcome"))
	if err != nil {
		return nil, errors.Wrap(err, "creations counter")
	}
	validateDur, err := meter.Float64Histogram("catalog.product.validation.duration",
		metric.WithDescription("Validation phase duration"), metric.WithUnit("s"))
	if err != nil {
		return nil, errors.Wrap(err, "validation histogram")
	}
	persistDur, err := meter.Float64Histogram("catalog.product.persist.duration",
		metric.WithDescription("Persistence phase duration"), metric.WithUnit("s"))
	if err != nil {
		return nil, errors.Wrap(err, "persist histogram")
	}
	totalDur, err := meter.Float64Histogram("catalog.product.create.duration",
		metric.WithDescription("Total creation duration"), metric.WithUnit("s"))
	if err != nil {
		return nil, errors.Wrap(err, "total histogram")
	}

	return &TelemetrySink{
		creations:   creations,
		validateDur: validateDur,
		persistDur:  persistDur,
		totalDur:    totalDur,
	}, nil
}

// Record publishes the metrics record. It never returns an error and
// performs no I/O beyond the in-process instrument updates and a log line.
func (s *TelemetrySink) Record(ctx context.Context, m CreationMetrics) {
	attrs := metric.WithAttributes(
		attribute.String("category", string(m.Category)),
		attribute.Bool("success", m.Success),
	)
	s.creations.Add(ctx, 1, attrs)
	s.validateDur.Record(ctx, m.ValidationDuration.Seconds(), attrs)
	s.persistDur.Record(ctx, m.PersistDuration.Seconds(), attrs)
	s.totalDur.Record(ctx, m.TotalDuration.Seconds(), attrs)

	lg := zctx.From(ctx)
	fields := []zap.Field{
		zap.String("operation_id", m.OperationID),
		zap.String("product", m.ProductName),
		zap.String("sku", m.SKU),
		zap.String("category", string(m.Category)),
		zap.Duration("validation_duration", m.ValidationDuration),
		zap.Duration("persist_duration", m.PersistDuration),
		zap.Duration("total_duration", m.TotalDuration),
		zap.Bool("success", m.Success),
	}
	if m.ErrorReason != "" {
		fields = append(fields, zap.String("error_reason", m.ErrorReason))
	}
	lg.Info("Product creation metrics", fields...)
}
