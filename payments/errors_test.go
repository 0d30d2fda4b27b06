//go:build unit

package payments

import (
	"errors"
	"fmt"
	"testing"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBusinessError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantCode  string
		wantTitle string
	}{
		{name: "insufficient funds", err: constant.ErrInsufficientFunds, wantCode: "0018", wantTitle: "Insufficient Funds"},
		{name: "wrapped unknown transaction", err: fmt.Errorf("record 7: %w", constant.ErrUnknownTransaction), wantCode: "0019", wantTitle: "Unknown Transaction"},
		{name: "account locked", err: constant.ErrAccountLocked, wantCode: "0024", wantTitle: "Account Locked"},
		{name: "malformed record", err: constant.ErrMalformedRecord, wantCode: "1001", wantTitle: "Malformed Record"},
		{name: "not disputed", err: constant.ErrInvalidStateTransition, wantCode: "1002", wantTitle: "Transaction Not Disputed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := ValidateBusinessError(tt.err, "transaction")

			var response Response
			require.True(t, errors.As(result, &response))
			assert.Equal(t, tt.wantCode, response.Code)
			assert.Equal(t, tt.wantTitle, response.Title)
			assert.Equal(t, "transaction", response.EntityType)
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestValidateBusinessError_Passthrough(t *testing.T) {
	t.Parallel()

	other := errors.New("disk on fire")

	assert.Same(t, other, ValidateBusinessError(other, "transaction"))
	assert.NoError(t, ValidateBusinessError(nil, "transaction"))
}
