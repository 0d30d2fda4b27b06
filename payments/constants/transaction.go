package constant

const (
	// DEPOSIT identifies deposit records.
	DEPOSIT = "deposit"
	// WITHDRAWAL identifies withdrawal records.
	WITHDRAWAL = "withdrawal"
	// DISPUTE identifies dispute records.
	DISPUTE = "dispute"
	// RESOLVE identifies resolve records.
	RESOLVE = "resolve"
	// CHARGEBACK identifies chargeback records.
	CHARGEBACK = "chargeback"

	// APPLIED marks a record that mutated the ledger.
	APPLIED = "applied"
	// IGNORED marks a record dropped by a business rule.
	IGNORED = "ignored"
	// REJECTED marks a record that aborts the run.
	REJECTED = "rejected"

	// AmountScale is the number of decimal places rendered for balances.
	AmountScale = 4
)
