// Package opentelemetry wires OpenTelemetry tracing, metrics and logs for the engine.
//
// With telemetry enabled, spans, metrics and log records are exported over
// OTLP gRPC to the configured collector. With telemetry disabled, in-process
// SDK providers are returned so instrumentation code paths stay identical.
package opentelemetry
