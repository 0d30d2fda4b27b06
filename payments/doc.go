// Package payments provides shared helpers for the payment engine.
//
// It holds the environment configuration loader, context helpers that carry
// the logger, tracer, metrics factory and run id, the business error adapter
// and small utilities. The ledger rules live in subpackages ledger and processor.
//
//	ctx = payments.ContextWithLogger(ctx, logger)
//	ctx = payments.ContextWithRunID(ctx, runID.String())
package payments
