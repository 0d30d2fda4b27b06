// Package ledger holds per-account balances and the mutations allowed on them.
//
// Every account keeps available + held == total. Decreases never go below
// zero and multi-field operations check all preconditions before mutating,
// so a failed call leaves the account untouched.
//
// A Ledger is not safe for concurrent use; the processor owns it.
package ledger
