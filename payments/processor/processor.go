package processor

import (
	"context"

	"github.com/LerianStudio/payment-engine/payments/assert"
	"github.com/LerianStudio/payment-engine/payments/ledger"
	"github.com/LerianStudio/payment-engine/payments/transaction"
)

// Option configures a Processor.
type Option func(*Processor)

// WithStrictOwnership makes dispute, resolve and chargeback records fail as
// unknown references when their client differs from the referenced
// transaction's owner. By default the client on the record is used as is.
func WithStrictOwnership() Option {
	return func(p *Processor) {
		p.strictOwnership = true
	}
}

// WithInvariantChecks verifies balance conservation and non-negativity on
// the touched account after every applied record. A violation turns the
// outcome into Rejected.
func WithInvariantChecks(asserter *assert.Asserter) Option {
	return func(p *Processor) {
		p.asserter = asserter
	}
}

// WithLedger makes the processor apply records to an existing ledger.
func WithLedger(l *ledger.Ledger) Option {
	return func(p *Processor) {
		if l != nil {
			p.ledger = l
		}
	}
}

// Processor owns a ledger and the history of referenceable transactions.
type Processor struct {
	ledger          *ledger.Ledger
	history         *History
	stats           Stats
	strictOwnership bool
	asserter        *assert.Asserter
}

// New returns a Processor with an empty ledger and history.
func New(opts ...Option) *Processor {
	p := &Processor{
		ledger:  ledger.New(),
		history: NewHistory(),
		stats:   Stats{ByKind: make(map[transaction.Kind]Counts)},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Ledger returns the ledger the processor mutates.
func (p *Processor) Ledger() *ledger.Ledger {
	return p.ledger
}

// History returns the transaction history.
func (p *Processor) History() *History {
	return p.history
}

// Stats returns a copy of the outcome counters.
func (p *Processor) Stats() Stats {
	return p.stats.clone()
}

// Apply validates rec, opens its account if needed and runs the rule for its kind.
func (p *Processor) Apply(ctx context.Context, rec transaction.Record) Outcome {
	outcome := p.apply(ctx, rec)

	counts := p.stats.ByKind[rec.Kind]
	counts.add(outcome.Kind)
	p.stats.ByKind[rec.Kind] = counts

	return outcome
}

func (p *Processor) apply(ctx context.Context, rec transaction.Record) Outcome {
	if err := rec.Validate(); err != nil {
		return rejected(err)
	}

	p.ledger.GetOrCreate(rec.AccountID)

	var outcome Outcome

	switch rec.Kind {
	case transaction.KindDeposit:
		outcome = p.deposit(ctx, rec)
	case transaction.KindWithdrawal:
		outcome = p.withdraw(rec)
	case transaction.KindDispute:
		outcome = p.dispute(rec)
	case transaction.KindResolve:
		outcome = p.resolve(rec)
	case transaction.KindChargeback:
		outcome = p.chargeback(rec)
	default:
		return rejected(p.asserter.Never(ctx, "validated record has unhandled kind", "kind", rec.Kind))
	}

	if outcome.Kind == Applied {
		if err := p.checkInvariants(ctx, rec); err != nil {
			return rejected(err)
		}
	}

	return outcome
}

func (p *Processor) deposit(ctx context.Context, rec transaction.Record) Outcome {
	acct := p.ledger.GetOrCreate(rec.AccountID)
	if acct.Locked {
		return ignored(accountLocked(rec))
	}

	amount := rec.AmountOrZero()

	// Validate already refused negative amounts, so a failed credit is a ledger bug.
	err := p.ledger.Credit(rec.AccountID, amount, ledger.Available, ledger.Total)
	if err := p.asserter.NoError(ctx, err, "credit of a validated deposit failed", "client", rec.AccountID, "tx", rec.TxID); err != nil {
		return rejected(err)
	}

	p.history.Put(rec.TxID, Entry{Kind: EntryDeposit, Amount: amount, Owner: rec.AccountID})

	return applied()
}

func (p *Processor) withdraw(rec transaction.Record) Outcome {
	acct := p.ledger.GetOrCreate(rec.AccountID)
	if acct.Locked {
		return ignored(accountLocked(rec))
	}

	amount := rec.AmountOrZero()

	if err := p.ledger.Debit(rec.AccountID, amount, ledger.Available, ledger.Total); err != nil {
		return ignored(err)
	}

	p.history.Put(rec.TxID, Entry{Kind: EntryWithdrawal, Amount: amount, Owner: rec.AccountID})

	return applied()
}

func (p *Processor) dispute(rec transaction.Record) Outcome {
	entry, ok := p.lookup(rec)
	if !ok {
		return ignored(unknownReference(rec))
	}

	if !entry.Kind.Disputable() {
		return ignored(notInState(rec, entry.Kind, "deposit or withdrawal"))
	}

	if p.ledger.GetOrCreate(rec.AccountID).Locked {
		return ignored(accountLocked(rec))
	}

	if err := p.ledger.Move(rec.AccountID, ledger.Available, ledger.Held, entry.Amount); err != nil {
		return ignored(err)
	}

	entry.Kind = EntryDispute
	p.history.Put(rec.TxID, entry)

	return applied()
}

func (p *Processor) resolve(rec transaction.Record) Outcome {
	entry, ok := p.lookup(rec)
	if !ok {
		return rejected(unknownReference(rec))
	}

	if entry.Kind != EntryDispute {
		return rejected(notInState(rec, entry.Kind, "dispute"))
	}

	if p.ledger.GetOrCreate(rec.AccountID).Locked {
		return rejected(accountLocked(rec))
	}

	if err := p.ledger.Move(rec.AccountID, ledger.Held, ledger.Available, entry.Amount); err != nil {
		return rejected(err)
	}

	p.history.Remove(rec.TxID)

	return applied()
}

func (p *Processor) chargeback(rec transaction.Record) Outcome {
	entry, ok := p.lookup(rec)
	if !ok {
		return rejected(unknownReference(rec))
	}

	if entry.Kind != EntryDispute {
		return rejected(notInState(rec, entry.Kind, "dispute"))
	}

	if err := p.ledger.Debit(rec.AccountID, entry.Amount, ledger.Held, ledger.Total); err != nil {
		return rejected(err)
	}

	p.ledger.Lock(rec.AccountID)

	entry.Kind = EntryChargedBack
	p.history.Put(rec.TxID, entry)

	return applied()
}

func (p *Processor) lookup(rec transaction.Record) (Entry, bool) {
	entry, ok := p.history.Get(rec.TxID)
	if !ok {
		return Entry{}, false
	}

	if p.strictOwnership && entry.Owner != rec.AccountID {
		return Entry{}, false
	}

	return entry, true
}

func (p *Processor) checkInvariants(ctx context.Context, rec transaction.Record) error {
	if p.asserter == nil {
		return nil
	}

	acct, _ := p.ledger.Get(rec.AccountID)
	kv := []any{"client", rec.AccountID, "tx", rec.TxID, "kind", rec.Kind}

	if err := p.asserter.Conserved(ctx, acct.Available, acct.Held, acct.Total, kv...); err != nil {
		return err
	}

	for _, field := range []ledger.Field{ledger.Available, ledger.Held, ledger.Total} {
		if err := p.asserter.NonNegative(ctx, acct.Balance(field), field.String()+" must not be negative", kv...); err != nil {
			return err
		}
	}

	return nil
}
