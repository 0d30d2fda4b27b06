package assert

import (
	"context"
	"fmt"
	"sync"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AssertionSpanEventName is the event name used when recording assertion failures on spans.
const AssertionSpanEventName = constant.EventAssertionFailed

var assertionFailedMetric = metrics.Metric{
	Name:        constant.MetricAssertionFailedTotal,
	Unit:        "1",
	Description: "Total number of failed assertions",
}

var (
	assertionFactory   *metrics.MetricsFactory
	assertionFactoryMu sync.RWMutex
)

// InitAssertionMetrics enables assertion_failed_total on the given factory.
// Subsequent calls are no-ops until ResetAssertionMetrics.
func InitAssertionMetrics(factory *metrics.MetricsFactory) {
	assertionFactoryMu.Lock()
	defer assertionFactoryMu.Unlock()

	if factory == nil || assertionFactory != nil {
		return
	}

	assertionFactory = factory
}

// ResetAssertionMetrics clears the assertion metrics factory (tests).
func ResetAssertionMetrics() {
	assertionFactoryMu.Lock()
	defer assertionFactoryMu.Unlock()

	assertionFactory = nil
}

func recordAssertionMetric(ctx context.Context, component, operation, assertion string) {
	assertionFactoryMu.RLock()
	factory := assertionFactory
	assertionFactoryMu.RUnlock()

	if factory == nil {
		return
	}

	counter, err := factory.Counter(assertionFailedMetric)
	if err != nil {
		logAssertion(ctx, nil, fmt.Sprintf("failed to create assertion metric counter: %v", err))
		return
	}

	_ = counter.WithLabels(map[string]string{
		"component": constant.SanitizeMetricLabel(component),
		"operation": constant.SanitizeMetricLabel(operation),
		"assertion": constant.SanitizeMetricLabel(assertion),
	}).AddOne(ctx)
}

func recordAssertionToSpan(ctx context.Context, assertion, message string, stack []byte, component, operation string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("assertion.name", assertion),
		attribute.String("assertion.message", message),
	}

	if component != "" {
		attrs = append(attrs, attribute.String("assertion.component", component))
	}

	if operation != "" {
		attrs = append(attrs, attribute.String("assertion.operation", operation))
	}

	if len(stack) > 0 {
		attrs = append(attrs, attribute.String("assertion.stack", string(stack)))
	}

	span.AddEvent(AssertionSpanEventName, trace.WithAttributes(attrs...))
	span.RecordError(fmt.Errorf("%w: %s", ErrAssertionFailed, message))
	span.SetStatus(codes.Error, assertionStatusMessage(component, operation))
}

func assertionStatusMessage(component, operation string) string {
	switch {
	case component != "" && operation != "":
		return fmt.Sprintf("assertion failed in %s/%s", component, operation)
	case component != "":
		return "assertion failed in " + component
	case operation != "":
		return "assertion failed in " + operation
	default:
		return "assertion failed"
	}
}
