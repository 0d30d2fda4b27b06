package log

import (
	"time"

	"github.com/shopspring/decimal"
)

// Keys used for record-level fields, so every component logs the same names.
const (
	KeyKind    = "kind"
	KeyClient  = "client"
	KeyTx      = "tx"
	KeyAmount  = "amount"
	KeyOutcome = "outcome"
	KeyRunID   = "run_id"
)

// Kind names the record kind.
func Kind(kind string) Field {
	return String(KeyKind, kind)
}

// Client identifies the account a record targets.
func Client(id uint16) Field {
	return Uint64(KeyClient, uint64(id))
}

// Tx identifies a transaction.
func Tx(id uint32) Field {
	return Uint64(KeyTx, uint64(id))
}

// Amount keeps the decimal value so the backend can render it exactly.
func Amount(amount decimal.Decimal) Field {
	return Field{Key: KeyAmount, Value: amount}
}

// Outcome labels the result of applying a record.
func Outcome(outcome string) Field {
	return String(KeyOutcome, outcome)
}

// RunID tags every entry of a single engine run.
func RunID(id string) Field {
	return String(KeyRunID, id)
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}
