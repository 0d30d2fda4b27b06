//go:build unit

package payments

import (
	"context"
	"math"
	"testing"

	"github.com/LerianStudio/payment-engine/payments/opentelemetry/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestGenerateUUIDv7(t *testing.T) {
	t.Parallel()

	id, err := GenerateUUIDv7()
	require.NoError(t, err)
	assert.Equal(t, 7, int(id.Version()))
}

func TestSafeInt64ToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1024, SafeInt64ToInt(1024))
	assert.Equal(t, math.MaxInt, SafeInt64ToInt(math.MaxInt64))
}

func TestGetMemUsage(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	factory, err := metrics.NewMetricsFactory(provider.Meter("test"), nil)
	require.NoError(t, err)

	GetMemUsage(context.Background(), factory)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == metrics.MetricSystemMemUsage.Name {
				found = true
			}
		}
	}

	assert.True(t, found)
	assert.NotPanics(t, func() { GetMemUsage(context.Background(), nil) })
}
