package opentelemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/LerianStudio/payment-engine/payments/runtime"
	otellog "go.opentelemetry.io/otel/log"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

// PanicReporter emits recovered panics as OpenTelemetry log records carrying
// the exception attributes, so a collector can alert on them directly.
type PanicReporter struct {
	logger otellog.Logger
}

var _ runtime.ErrorReporter = (*PanicReporter)(nil)

// NewPanicReporter returns a reporter that emits through provider under scope.
// A nil provider yields a reporter that drops every report.
func NewPanicReporter(provider otellog.LoggerProvider, scope string) *PanicReporter {
	if provider == nil {
		return &PanicReporter{}
	}

	return &PanicReporter{logger: provider.Logger(scope)}
}

// PanicReporter returns a reporter bound to the telemetry logger provider.
func (tl *Telemetry) PanicReporter() *PanicReporter {
	if tl == nil || tl.LoggerProvider == nil {
		return NewPanicReporter(nil, "")
	}

	return NewPanicReporter(tl.LoggerProvider, tl.LibraryName)
}

// ReportPanic implements runtime.ErrorReporter.
func (r *PanicReporter) ReportPanic(ctx context.Context, report runtime.PanicReport) {
	if r == nil || r.logger == nil {
		return
	}

	message := "<nil>"
	if report.Err != nil {
		message = report.Err.Error()
	}

	var record otellog.Record
	record.SetTimestamp(time.Now())
	record.SetSeverity(otellog.SeverityError)
	record.SetSeverityText("ERROR")
	record.SetBody(otellog.StringValue("panic recovered in " + report.Component + "/" + report.Source))
	record.AddAttributes(
		otellog.String(string(semconv.ExceptionTypeKey), fmt.Sprintf("%T", report.Err)),
		otellog.String(string(semconv.ExceptionMessageKey), message),
		otellog.String("panic.component", report.Component),
		otellog.String("panic.goroutine_name", report.Source),
	)

	if report.Stack != "" {
		record.AddAttributes(otellog.String(string(semconv.ExceptionStacktraceKey), report.Stack))
	}

	r.logger.Emit(ctx, record)
}
