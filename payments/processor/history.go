package processor

import "github.com/shopspring/decimal"

// EntryKind tags a history entry.
type EntryKind int

const (
	// EntryDeposit is an applied deposit.
	EntryDeposit EntryKind = iota
	// EntryWithdrawal is an approved withdrawal.
	EntryWithdrawal
	// EntryDispute is a deposit or withdrawal under dispute.
	EntryDispute
	// EntryChargedBack is a dispute settled by chargeback. It is terminal.
	EntryChargedBack
)

// String returns the tag name.
func (k EntryKind) String() string {
	switch k {
	case EntryDeposit:
		return "deposit"
	case EntryWithdrawal:
		return "withdrawal"
	case EntryDispute:
		return "dispute"
	case EntryChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

// Disputable reports whether an entry with this tag may be disputed.
func (k EntryKind) Disputable() bool {
	return k == EntryDeposit || k == EntryWithdrawal
}

// Entry is what the processor remembers about a transaction id.
type Entry struct {
	Kind   EntryKind
	Amount decimal.Decimal
	// Owner is the account the original deposit or withdrawal was applied to.
	Owner uint16
}

// History maps transaction ids to their entries.
type History struct {
	entries map[uint32]Entry
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{entries: make(map[uint32]Entry)}
}

// Get returns the entry for tx.
func (h *History) Get(tx uint32) (Entry, bool) {
	e, ok := h.entries[tx]
	return e, ok
}

// Put stores or overwrites the entry for tx.
func (h *History) Put(tx uint32, e Entry) {
	h.entries[tx] = e
}

// Remove deletes the entry for tx.
func (h *History) Remove(tx uint32) {
	delete(h.entries, tx)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
