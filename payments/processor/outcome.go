package processor

import (
	"fmt"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/LerianStudio/payment-engine/payments/transaction"
)

// OutcomeKind classifies the result of applying one record.
type OutcomeKind int

const (
	// Applied means the ledger changed.
	Applied OutcomeKind = iota
	// Ignored means a business rule declined the record; processing continues.
	Ignored
	// Rejected means the record is fatal to the run.
	Rejected
)

// String returns the metric label for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case Applied:
		return constant.APPLIED
	case Ignored:
		return constant.IGNORED
	case Rejected:
		return constant.REJECTED
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the result of applying one record. Reason explains an Ignored
// or Rejected outcome and is nil for Applied.
type Outcome struct {
	Kind   OutcomeKind
	Reason error
}

// Err returns the reason of a Rejected outcome and nil otherwise.
func (o Outcome) Err() error {
	if o.Kind == Rejected {
		return o.Reason
	}

	return nil
}

func applied() Outcome {
	return Outcome{Kind: Applied}
}

func ignored(reason error) Outcome {
	return Outcome{Kind: Ignored, Reason: reason}
}

func rejected(reason error) Outcome {
	return Outcome{Kind: Rejected, Reason: reason}
}

var (
	// ErrUnknownReference is matched when a record refers to a transaction
	// that is absent from history or owned by another account in strict mode.
	ErrUnknownReference = constant.ErrUnknownTransaction
	// ErrNotDisputed is matched when a record refers to a transaction whose
	// entry is not in the state the rule needs.
	ErrNotDisputed = constant.ErrInvalidStateTransition
	// ErrAccountLocked is matched when a rule needs an unlocked account.
	ErrAccountLocked = constant.ErrAccountLocked
)

func unknownReference(rec transaction.Record) error {
	return transaction.NewDomainError(
		transaction.ErrorUnknownTransaction,
		"tx",
		fmt.Sprintf("%s on client %d references unknown transaction %d", rec.Kind, rec.AccountID, rec.TxID),
	)
}

func notInState(rec transaction.Record, have EntryKind, want string) error {
	return transaction.NewDomainError(
		transaction.ErrorInvalidStateTransition,
		"tx",
		fmt.Sprintf("%s on transaction %d requires a %s entry, found %s", rec.Kind, rec.TxID, want, have),
	)
}

func accountLocked(rec transaction.Record) error {
	return transaction.NewDomainError(
		transaction.ErrorAccountLocked,
		"client",
		fmt.Sprintf("%s %d on locked client %d", rec.Kind, rec.TxID, rec.AccountID),
	)
}
