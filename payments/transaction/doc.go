// Package transaction defines the typed input records consumed by the processor.
//
// Records are produced by a Source (a CSV decoder, a slice, a channel) and
// validated before they reach the ledger rules. Structural problems surface as
// DomainError values carrying ErrorInvalidInput.
package transaction
