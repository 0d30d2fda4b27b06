package transaction

import (
	"errors"
	"fmt"
	"io"
	"strings"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/shopspring/decimal"
)

// Kind is the event type of a record.
type Kind string

const (
	// KindDeposit credits available funds.
	KindDeposit Kind = constant.DEPOSIT
	// KindWithdrawal debits available funds.
	KindWithdrawal Kind = constant.WITHDRAWAL
	// KindDispute moves a referenced amount from available to held.
	KindDispute Kind = constant.DISPUTE
	// KindResolve releases a disputed amount back to available.
	KindResolve Kind = constant.RESOLVE
	// KindChargeback removes a disputed amount and freezes the account.
	KindChargeback Kind = constant.CHARGEBACK
)

// Kinds lists every known record kind in a stable order.
var Kinds = []Kind{KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback}

// ParseKind maps a case-insensitive, whitespace-trimmed name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return k, nil
	default:
		return "", NewDomainError(ErrorInvalidInput, "type", fmt.Sprintf("unknown record type %q", s))
	}
}

// CarriesAmount reports whether records of this kind must state an amount.
func (k Kind) CarriesAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// References reports whether records of this kind point at an earlier transaction.
func (k Kind) References() bool {
	return k == KindDispute || k == KindResolve || k == KindChargeback
}

// ErrorCode is a domain error code.
type ErrorCode string

const (
	// ErrorInsufficientFunds is returned when a balance cannot cover an amount.
	ErrorInsufficientFunds ErrorCode = "0018"
	// ErrorUnknownTransaction is returned when a referenced transaction is absent.
	ErrorUnknownTransaction ErrorCode = "0019"
	// ErrorAccountLocked is returned when a frozen account is asked to move funds.
	ErrorAccountLocked ErrorCode = "0024"
	// ErrorInvalidInput is returned for records that cannot be interpreted.
	ErrorInvalidInput ErrorCode = "1001"
	// ErrorInvalidStateTransition is returned when a referenced transaction is
	// not in the state a rule requires.
	ErrorInvalidStateTransition ErrorCode = "1002"
)

var codeSentinels = map[ErrorCode]error{
	ErrorInsufficientFunds:      constant.ErrInsufficientFunds,
	ErrorUnknownTransaction:     constant.ErrUnknownTransaction,
	ErrorAccountLocked:          constant.ErrAccountLocked,
	ErrorInvalidInput:           constant.ErrMalformedRecord,
	ErrorInvalidStateTransition: constant.ErrInvalidStateTransition,
}

// ErrMalformedRecord is matched by every ErrorInvalidInput DomainError.
var ErrMalformedRecord = constant.ErrMalformedRecord

// DomainError represents a structured domain error.
type DomainError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted domain error string.
func (e DomainError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// Unwrap returns the sentinel for e.Code so errors.Is matches it.
func (e DomainError) Unwrap() error {
	return codeSentinels[e.Code]
}

// NewDomainError creates a domain error with code, field, and message.
func NewDomainError(code ErrorCode, field, message string) error {
	return DomainError{Code: code, Field: field, Message: message}
}

// CodeOf returns the code of the first DomainError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var domainErr DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code, true
	}

	return "", false
}

// Record is one input event.
type Record struct {
	Kind      Kind
	AccountID uint16
	TxID      uint32
	// Amount is nil when the input omitted it. Only deposits and withdrawals need one.
	Amount *decimal.Decimal
}

// AmountOrZero returns the record amount, or zero when absent.
func (r Record) AmountOrZero() decimal.Decimal {
	if r.Amount == nil {
		return decimal.Zero
	}

	return *r.Amount
}

// Validate checks the structural rules a record must satisfy before any
// ledger rule sees it.
func (r Record) Validate() error {
	switch r.Kind {
	case KindDeposit, KindWithdrawal:
		if r.Amount == nil {
			return NewDomainError(ErrorInvalidInput, "amount", fmt.Sprintf("%s %d requires an amount", r.Kind, r.TxID))
		}

		if r.Amount.IsNegative() {
			return NewDomainError(ErrorInvalidInput, "amount", fmt.Sprintf("%s %d has negative amount %s", r.Kind, r.TxID, r.Amount))
		}
	case KindDispute, KindResolve, KindChargeback:
	default:
		return NewDomainError(ErrorInvalidInput, "type", fmt.Sprintf("unknown record type %q", r.Kind))
	}

	return nil
}

// Source yields records in input order. Next returns io.EOF once exhausted.
type Source interface {
	Next() (Record, error)
}

// SliceSource serves records from memory.
type SliceSource struct {
	records []Record
	pos     int
}

// NewSliceSource returns a Source over records.
func NewSliceSource(records []Record) *SliceSource {
	return &SliceSource{records: records}
}

// Next returns the next record or io.EOF.
func (s *SliceSource) Next() (Record, error) {
	if s.pos >= len(s.records) {
		return Record{}, io.EOF
	}

	r := s.records[s.pos]
	s.pos++

	return r, nil
}

// Len returns the total number of records held.
func (s *SliceSource) Len() int {
	return len(s.records)
}
