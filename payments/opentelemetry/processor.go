package opentelemetry

import (
	"context"

	"github.com/LerianStudio/payment-engine/payments"
	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// RunIDSpanProcessor stamps the run id carried by the context onto every span at start.
type RunIDSpanProcessor struct{}

func (RunIDSpanProcessor) OnStart(ctx context.Context, s sdktrace.ReadWriteSpan) {
	if runID := payments.RunIDFromContext(ctx); runID != "" {
		s.SetAttributes(attribute.String(constant.AttrRunID, runID))
	}
}

func (RunIDSpanProcessor) OnEnd(sdktrace.ReadOnlySpan) {}

func (RunIDSpanProcessor) Shutdown(context.Context) error { return nil }

func (RunIDSpanProcessor) ForceFlush(context.Context) error { return nil }
