// Package runtime provides panic recovery with observability for engine goroutines.
//
// Recovered panics are logged, counted in panic_recovered_total, recorded as
// span events and optionally forwarded to an ErrorReporter. Production mode
// redacts panic values and stack traces.
package runtime
