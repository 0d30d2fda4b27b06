package ledger

import (
	"fmt"
	"sort"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/LerianStudio/payment-engine/payments/transaction"
	"github.com/shopspring/decimal"
)

// ErrInsufficientFunds is matched by every failed decrease.
var ErrInsufficientFunds = constant.ErrInsufficientFunds

// Field names one of the balance columns of an account.
type Field int

const (
	// Available funds can be withdrawn or disputed.
	Available Field = iota
	// Held funds are frozen by an open dispute.
	Held
	// Total is available plus held.
	Total
)

// String returns the column name.
func (f Field) String() string {
	switch f {
	case Available:
		return "available"
	case Held:
		return "held"
	case Total:
		return "total"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Account is the balance state of one client.
type Account struct {
	ID        uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}

// Balance returns the value of field.
func (a *Account) Balance(field Field) decimal.Decimal {
	switch field {
	case Available:
		return a.Available
	case Held:
		return a.Held
	default:
		return a.Total
	}
}

func (a *Account) set(field Field, value decimal.Decimal) {
	switch field {
	case Available:
		a.Available = value
	case Held:
		a.Held = value
	default:
		a.Total = value
	}
}

// Ledger maps account ids to accounts.
type Ledger struct {
	accounts map[uint16]*Account
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[uint16]*Account)}
}

// GetOrCreate returns the account for id, opening a zero-balance unlocked
// account on first reference.
func (l *Ledger) GetOrCreate(id uint16) *Account {
	if acct, ok := l.accounts[id]; ok {
		return acct
	}

	acct := &Account{
		ID:        id,
		Available: decimal.Zero,
		Held:      decimal.Zero,
		Total:     decimal.Zero,
	}
	l.accounts[id] = acct

	return acct
}

// Get returns a copy of the account for id.
func (l *Ledger) Get(id uint16) (Account, bool) {
	acct, ok := l.accounts[id]
	if !ok {
		return Account{}, false
	}

	return *acct, true
}

// Len returns the number of accounts opened so far.
func (l *Ledger) Len() int {
	return len(l.accounts)
}

// LockedCount returns the number of frozen accounts.
func (l *Ledger) LockedCount() int {
	n := 0

	for _, acct := range l.accounts {
		if acct.Locked {
			n++
		}
	}

	return n
}

// Lock freezes the account for id.
func (l *Ledger) Lock(id uint16) {
	l.GetOrCreate(id).Locked = true
}

// Increase adds amount to field.
func (l *Ledger) Increase(id uint16, field Field, amount decimal.Decimal) error {
	return l.Credit(id, amount, field)
}

// Decrease subtracts amount from field. When the field holds less than
// amount nothing changes and an ErrInsufficientFunds error is returned.
func (l *Ledger) Decrease(id uint16, field Field, amount decimal.Decimal) error {
	return l.Debit(id, amount, field)
}

// Credit adds amount to every listed field.
func (l *Ledger) Credit(id uint16, amount decimal.Decimal, fields ...Field) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	acct := l.GetOrCreate(id)

	for _, field := range fields {
		acct.set(field, acct.Balance(field).Add(amount))
	}

	return nil
}

// Debit subtracts amount from every listed field, or from none of them if
// any field holds less than amount.
func (l *Ledger) Debit(id uint16, amount decimal.Decimal, fields ...Field) error {
	if err := checkAmount(amount); err != nil {
		return err
	}

	acct := l.GetOrCreate(id)

	for _, field := range fields {
		if acct.Balance(field).LessThan(amount) {
			return insufficient(id, field, acct.Balance(field), amount)
		}
	}

	for _, field := range fields {
		acct.set(field, acct.Balance(field).Sub(amount))
	}

	return nil
}

// Move transfers amount from one field to another on the same account.
func (l *Ledger) Move(id uint16, from, to Field, amount decimal.Decimal) error {
	if err := l.Debit(id, amount, from); err != nil {
		return err
	}

	acct := l.accounts[id]
	acct.set(to, acct.Balance(to).Add(amount))

	return nil
}

// Snapshot returns copies of every account ordered by id.
func (l *Ledger) Snapshot() []Account {
	out := make([]Account, 0, len(l.accounts))

	for _, acct := range l.accounts {
		out = append(out, *acct)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func checkAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return transaction.NewDomainError(transaction.ErrorInvalidInput, "amount", "amount must not be negative: "+amount.String())
	}

	return nil
}

func insufficient(id uint16, field Field, have, want decimal.Decimal) error {
	return transaction.NewDomainError(
		transaction.ErrorInsufficientFunds,
		field.String(),
		fmt.Sprintf("account %d has %s %s, needs %s", id, have, field, want),
	)
}
