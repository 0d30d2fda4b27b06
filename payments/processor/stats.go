package processor

import "github.com/LerianStudio/payment-engine/payments/transaction"

// Counts tallies outcomes for one record kind.
type Counts struct {
	Applied  int
	Ignored  int
	Rejected int
}

// Total returns the number of records counted.
func (c Counts) Total() int {
	return c.Applied + c.Ignored + c.Rejected
}

func (c *Counts) add(kind OutcomeKind) {
	switch kind {
	case Applied:
		c.Applied++
	case Ignored:
		c.Ignored++
	case Rejected:
		c.Rejected++
	}
}

// Stats tallies outcomes per record kind.
type Stats struct {
	ByKind map[transaction.Kind]Counts
}

// Total sums the counts across kinds.
func (s Stats) Total() Counts {
	var total Counts

	for _, c := range s.ByKind {
		total.Applied += c.Applied
		total.Ignored += c.Ignored
		total.Rejected += c.Rejected
	}

	return total
}

func (s Stats) clone() Stats {
	out := Stats{ByKind: make(map[transaction.Kind]Counts, len(s.ByKind))}
	for k, v := range s.ByKind {
		out.ByKind[k] = v
	}

	return out
}
