// Package errgroup runs cooperating goroutines with shared cancellation and
// panic recovery.
//
// The engine uses it to pair the streaming decoder with the serial applier.
package errgroup
