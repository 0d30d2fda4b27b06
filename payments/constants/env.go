package constant

// Environment variable names read by the engine configuration.
const (
	EnvName                 = "ENV_NAME"
	EnvVersion              = "VERSION"
	EnvLogLevel             = "LOG_LEVEL"
	EnvStreamThresholdBytes = "PAYMENTS_STREAM_THRESHOLD_BYTES"
	EnvStreamBuffer         = "PAYMENTS_STREAM_BUFFER"
	EnvStrictOwnership      = "PAYMENTS_STRICT_OWNERSHIP"
	EnvCheckInvariants      = "PAYMENTS_CHECK_INVARIANTS"
	EnvEnableTelemetry      = "ENABLE_TELEMETRY"
	EnvCollectorEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvLibraryName          = "OTEL_LIBRARY_NAME"
)

const (
	// DefaultStreamThresholdBytes is the file size above which input is streamed.
	DefaultStreamThresholdBytes = 500_000_000
	// DefaultStreamBuffer is the depth of the decoded-record channel in stream mode.
	DefaultStreamBuffer = 1024
	// DefaultLibraryName names the engine in telemetry scopes.
	DefaultLibraryName = "payment-engine"
)
