// Package zap provides the zap-backed implementation of the engine log.Logger.
//
// Logs are JSON encoded and written to stderr so that stdout stays reserved
// for the rendered ledger.
package zap
