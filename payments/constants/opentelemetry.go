package constant

// TelemetrySDKName identifies this engine in OTEL telemetry resource attributes.
const TelemetrySDKName = "payment-engine/opentelemetry"

// MaxMetricLabelLength is the maximum length for metric labels to prevent cardinality explosion.
// Used by assert and runtime packages for label sanitization.
const MaxMetricLabelLength = 64

// Telemetry metric names.
const (
	// MetricPanicRecoveredTotal is the counter metric for recovered panics.
	MetricPanicRecoveredTotal = "panic_recovered_total"
	// MetricAssertionFailedTotal is the counter metric for failed assertions.
	MetricAssertionFailedTotal = "assertion_failed_total"
)

// Telemetry event names.
const (
	// EventAssertionFailed is the span event name for assertion failures.
	EventAssertionFailed = "assertion.failed"
	// EventPanicRecovered is the span event name for recovered panics.
	EventPanicRecovered = "panic.recovered"
)

// Span attribute keys used by the engine.
const (
	AttrRunID        = "payments.run_id"
	AttrRunStrategy  = "payments.run.strategy"
	AttrRecordKind   = "payments.record.kind"
	AttrRecordTxID   = "payments.record.tx"
	AttrAccountID    = "payments.account.id"
	AttrRecordsTotal = "payments.records.total"
)

// SanitizeMetricLabel truncates a label value to MaxMetricLabelLength
// to prevent metric cardinality explosion in OTEL backends.
func SanitizeMetricLabel(value string) string {
	if len(value) > MaxMetricLabelLength {
		return value[:MaxMetricLabelLength]
	}

	return value
}
