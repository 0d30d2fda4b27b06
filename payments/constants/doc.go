// Package constant provides shared constant values used across the engine.
//
// Keep this package free of runtime behavior.
// It is used by the ledger, telemetry, and logging helpers to avoid duplicated literals.
package constant
