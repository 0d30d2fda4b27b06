package runtime

import (
	"context"
	"errors"
	"fmt"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrPanic is the sentinel recorded on spans for recovered panics.
var ErrPanic = errors.New("panic")

// PanicSpanEventName is the event name used when recording panics on spans.
const PanicSpanEventName = constant.EventPanicRecovered

// RecordPanicToSpanWithComponent adds a panic event to the active span in ctx
// and marks the span as failed. It is a no-op without a recording span.
func RecordPanicToSpanWithComponent(ctx context.Context, panicValue any, stack []byte, component, name string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	value := formatPanicValue(panicValue)
	if IsProductionMode() {
		value = redactedPanicMsg
		stack = nil
	}

	attrs := []attribute.KeyValue{
		attribute.String("panic.value", value),
		attribute.String("panic.goroutine_name", name),
	}

	if component != "" {
		attrs = append(attrs, attribute.String("panic.component", component))
	}

	if len(stack) > 0 {
		attrs = append(attrs, attribute.String("panic.stack", string(stack)))
	}

	span.AddEvent(PanicSpanEventName, trace.WithAttributes(attrs...))
	span.RecordError(fmt.Errorf("%w: %s", ErrPanic, value))
	span.SetStatus(codes.Error, "panic recovered in "+name)
}
