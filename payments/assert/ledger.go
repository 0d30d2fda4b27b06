package assert

import (
	"context"

	"github.com/shopspring/decimal"
)

// NonNegative returns an error if amount is below zero.
func (asserter *Asserter) NonNegative(ctx context.Context, amount decimal.Decimal, msg string, kv ...any) error {
	if !amount.IsNegative() {
		return nil
	}

	return asserter.fail(ctx, "NonNegative", msg, append([]any{"amount", amount.String()}, kv...)...)
}

// Conserved returns an error unless available + held == total.
func (asserter *Asserter) Conserved(ctx context.Context, available, held, total decimal.Decimal, kv ...any) error {
	if available.Add(held).Equal(total) {
		return nil
	}

	pairs := append([]any{
		"available", available.String(),
		"held", held.String(),
		"total", total.String(),
	}, kv...)

	return asserter.fail(ctx, "Conserved", "available + held must equal total", pairs...)
}
