// Package log defines the logging interface and typed logging fields used by the engine.
//
// Adapters (such as the zap package) implement Logger so the ledger core never
// depends on a concrete backend.
package log
