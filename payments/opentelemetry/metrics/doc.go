// Package metrics provides a fluent factory for OpenTelemetry metric instruments.
//
// MetricsFactory caches instruments and exposes builder-style APIs for counters,
// gauges, and histograms. Ledger-specific helpers (RecordTransaction,
// RecordAccountsCreated, ...) sit on top of the generic builders.
package metrics
