// Package processor applies transaction records to a ledger, one at a time.
//
// Each record kind has a rule that either mutates the ledger (Applied),
// leaves it untouched for a business reason (Ignored) or fails the run
// (Rejected). Deposits and approved withdrawals are remembered in a History
// so later disputes, resolves and chargebacks can find the amount they refer to.
//
// Entry lifecycle:
//
//	Deposit | Withdrawal --dispute--> Dispute --resolve--> (removed)
//	                                  Dispute --chargeback--> ChargedBack
//
// A Processor is single-threaded. Feed records in input order.
package processor
