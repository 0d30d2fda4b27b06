package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	constant "github.com/LerianStudio/payment-engine/payments/constants"
	"github.com/LerianStudio/payment-engine/payments/ledger"
)

// Header is the output column row.
var Header = []string{"client", "available", "held", "total", "locked"}

// Writer renders ledger snapshots as CSV.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Render writes the header followed by one row per account, in the given order.
func (w *Writer) Render(accounts []ledger.Account) error {
	cw := csv.NewWriter(w.w)

	if err := cw.Write(Header); err != nil {
		return err
	}

	row := make([]string, len(Header))

	for _, acct := range accounts {
		row[0] = strconv.FormatUint(uint64(acct.ID), 10)
		row[1] = acct.Available.StringFixed(constant.AmountScale)
		row[2] = acct.Held.StringFixed(constant.AmountScale)
		row[3] = acct.Total.StringFixed(constant.AmountScale)
		row[4] = strconv.FormatBool(acct.Locked)

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
