//go:build unit

package runtime

import (
	"context"
	"sync"
	"testing"

	"github.com/LerianStudio/payment-engine/payments/log"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// testLogger captures log calls.
type testLogger struct {
	mu       sync.Mutex
	messages []string
	fields   [][]log.Field
}

func (logger *testLogger) Log(_ context.Context, _ log.Level, msg string, fields ...log.Field) {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	logger.messages = append(logger.messages, msg)
	logger.fields = append(logger.fields, fields)
}

func (logger *testLogger) field(key string) (any, bool) {
	logger.mu.Lock()
	defer logger.mu.Unlock()

	for _, fields := range logger.fields {
		for _, f := range fields {
			if f.Key == key {
				return f.Value, true
			}
		}
	}

	return nil, false
}

type captureReporter struct {
	mu      sync.Mutex
	reports []PanicReport
}

func (r *captureReporter) ReportPanic(_ context.Context, report PanicReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append(r.reports, report)
}

func newTestTracerProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	return provider, recorder
}
