// Package assert checks ledger invariants at runtime and reports failures as errors.
//
// An Asserter never panics. Failures are logged, counted in
// assertion_failed_total and recorded on the active span.
package assert
