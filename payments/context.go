package payments

import (
	"context"
	"strings"

	"github.com/LerianStudio/payment-engine/payments/assert"
	"github.com/LerianStudio/payment-engine/payments/log"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "payment-engine.default"

type customContextKey string

// CustomContextKey is the context key used to store CustomContextKeyValue.
var CustomContextKey = customContextKey("custom_context")

// CustomContextKeyValue holds the run-scoped facilities attached to a context.
type CustomContextKeyValue struct {
	RunID         string
	Tracer        trace.Tracer
	Logger        log.Logger
	MetricFactory *metrics.MetricsFactory
}

// values returns a copy of the container in ctx so that derived contexts
// never mutate their parent.
func values(ctx context.Context) *CustomContextKeyValue {
	current, _ := ctx.Value(CustomContextKey).(*CustomContextKeyValue)
	if current == nil {
		return &CustomContextKeyValue{}
	}

	clone := *current

	return &clone
}

// ContextWithLogger returns a context carrying logger.
func ContextWithLogger(ctx context.Context, logger log.Logger) context.Context {
	v := values(ctx)
	v.Logger = logger

	return context.WithValue(ctx, CustomContextKey, v)
}

// NewLoggerFromContext returns the logger in ctx, or a no-op logger.
//
//nolint:ireturn
func NewLoggerFromContext(ctx context.Context) log.Logger {
	if v, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok && v.Logger != nil {
		return v.Logger
	}

	return &log.NopLogger{}
}

// ContextWithTracer returns a context carrying tracer.
func ContextWithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	v := values(ctx)
	v.Tracer = tracer

	return context.WithValue(ctx, CustomContextKey, v)
}

// ContextWithMetricFactory returns a context carrying factory.
func ContextWithMetricFactory(ctx context.Context, factory *metrics.MetricsFactory) context.Context {
	v := values(ctx)
	v.MetricFactory = factory

	return context.WithValue(ctx, CustomContextKey, v)
}

// ContextWithRunID returns a context carrying the run id.
func ContextWithRunID(ctx context.Context, runID string) context.Context {
	v := values(ctx)
	v.RunID = strings.TrimSpace(runID)

	return context.WithValue(ctx, CustomContextKey, v)
}

// RunIDFromContext returns the run id in ctx, or an empty string.
func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CustomContextKey).(*CustomContextKeyValue); ok {
		return v.RunID
	}

	return ""
}

// NewTrackingFromContext returns the logger, tracer, run id and metrics
// factory carried by ctx. Missing components are replaced by working defaults.
//
//nolint:ireturn
func NewTrackingFromContext(ctx context.Context) (log.Logger, trace.Tracer, string, *metrics.MetricsFactory) {
	v, _ := ctx.Value(CustomContextKey).(*CustomContextKeyValue)
	if v == nil {
		v = &CustomContextKeyValue{}
	}

	logger := log.OrNop(v.Logger)

	tracer := v.Tracer
	if tracer == nil {
		tracer = otel.Tracer(defaultTracerName)
	}

	return logger, tracer, v.RunID, resolveMetricFactory(v.MetricFactory)
}

// resolveMetricFactory never returns nil.
func resolveMetricFactory(factory *metrics.MetricsFactory) *metrics.MetricsFactory {
	if factory != nil {
		return factory
	}

	defaultFactory, err := metrics.NewMetricsFactory(otel.GetMeterProvider().Meter(defaultTracerName), &log.NopLogger{})
	if err != nil {
		asserter := assert.New(context.Background(), nil, "payments", "resolveMetricFactory")
		_ = asserter.Never(context.Background(), "failed to create default MetricsFactory: "+err.Error())

		return metrics.NewNopFactory()
	}

	return defaultFactory
}
