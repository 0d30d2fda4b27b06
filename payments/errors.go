package payments

import (
	"errors"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
)

// Response is the user-facing form of a business error.
type Response struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e Response) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any.
func (e Response) Unwrap() error {
	return e.Err
}

var businessErrors = []struct {
	sentinel error
	title    string
	message  string
}{
	{
		sentinel: constant.ErrInsufficientFunds,
		title:    "Insufficient Funds",
		message:  "A resolve or chargeback required more held funds than the account has.",
	},
	{
		sentinel: constant.ErrUnknownTransaction,
		title:    "Unknown Transaction",
		message:  "A resolve or chargeback referenced a transaction that was never recorded or was already settled.",
	},
	{
		sentinel: constant.ErrAccountLocked,
		title:    "Account Locked",
		message:  "A resolve targeted an account frozen by an earlier chargeback.",
	},
	{
		sentinel: constant.ErrMalformedRecord,
		title:    "Malformed Record",
		message:  "The input contains a record that cannot be decoded. Fix the file and run again.",
	},
	{
		sentinel: constant.ErrInvalidStateTransition,
		title:    "Transaction Not Disputed",
		message:  "A resolve or chargeback referenced a transaction that is not under dispute.",
	},
}

// ValidateBusinessError maps err to a Response when it wraps one of the
// engine's sentinel errors. Other errors are returned unchanged.
func ValidateBusinessError(err error, entityType string) error {
	if err == nil {
		return nil
	}

	for _, candidate := range businessErrors {
		if errors.Is(err, candidate.sentinel) {
			return Response{
				EntityType: entityType,
				Code:       candidate.sentinel.Error(),
				Title:      candidate.title,
				Message:    candidate.message,
				Err:        err,
			}
		}
	}

	return err
}
