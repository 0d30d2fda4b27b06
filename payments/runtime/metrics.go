package runtime

import (
	"context"
	"sync"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/LerianStudio/payment-engine/payments/opentelemetry/metrics"
)

var panicRecoveredMetric = metrics.Metric{
	Name:        constant.MetricPanicRecoveredTotal,
	Unit:        "1",
	Description: "Total number of recovered panics",
}

var (
	panicMetricsFactory *metrics.MetricsFactory
	panicMetricsMu      sync.RWMutex
)

// InitPanicMetrics enables panic_recovered_total on the given factory.
// Subsequent calls are no-ops until ResetPanicMetrics.
func InitPanicMetrics(factory *metrics.MetricsFactory) {
	panicMetricsMu.Lock()
	defer panicMetricsMu.Unlock()

	if factory == nil || panicMetricsFactory != nil {
		return
	}

	panicMetricsFactory = factory
}

// ResetPanicMetrics clears the panic metrics factory (tests).
func ResetPanicMetrics() {
	panicMetricsMu.Lock()
	defer panicMetricsMu.Unlock()

	panicMetricsFactory = nil
}

func recordPanicMetric(ctx context.Context, component, goroutineName string) {
	panicMetricsMu.RLock()
	factory := panicMetricsFactory
	panicMetricsMu.RUnlock()

	if factory == nil {
		return
	}

	counter, err := factory.Counter(panicRecoveredMetric)
	if err != nil {
		return
	}

	_ = counter.WithLabels(map[string]string{
		"component":      constant.SanitizeMetricLabel(component),
		"goroutine_name": constant.SanitizeMetricLabel(goroutineName),
	}).AddOne(ctx)
}
