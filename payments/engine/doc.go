// Package engine drives a full ledger run: it opens the input, picks a
// decoding strategy by file size, feeds records to the processor in order and
// returns the final account snapshot.
//
// Small inputs are decoded completely before processing (StrategyBatch).
// Inputs larger than Config.StreamThresholdBytes are decoded on a separate
// goroutine and handed over through a bounded channel (StrategyStream).
// Records are always applied by a single goroutine.
package engine
