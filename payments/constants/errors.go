package constant

import "errors"

var (
	// ErrInsufficientFunds maps to transaction error code 0018.
	ErrInsufficientFunds = errors.New("0018")
	// ErrUnknownTransaction maps to transaction error code 0019.
	ErrUnknownTransaction = errors.New("0019")
	// ErrAccountLocked maps to transaction error code 0024.
	ErrAccountLocked = errors.New("0024")
	// ErrMalformedRecord maps to transaction error code 1001.
	ErrMalformedRecord = errors.New("1001")
	// ErrInvalidStateTransition maps to transaction error code 1002.
	ErrInvalidStateTransition = errors.New("1002")
)
