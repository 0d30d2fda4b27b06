package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LerianStudio/payment-engine/payments/transaction"
	"github.com/shopspring/decimal"
)

const (
	colType = iota
	colClient
	colTx
	colAmount
)

// Reader decodes records from CSV input. It implements transaction.Source.
type Reader struct {
	csv           *csv.Reader
	row           int
	headerChecked bool
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{csv: cr}
}

// Next returns the next record, or io.EOF at the end of input.
func (r *Reader) Next() (transaction.Record, error) {
	for {
		fields, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return transaction.Record{}, io.EOF
		}

		if err != nil {
			return transaction.Record{}, transaction.NewDomainError(transaction.ErrorInvalidInput, "csv", err.Error())
		}

		r.row++

		if !r.headerChecked {
			r.headerChecked = true

			if isHeader(fields) {
				continue
			}
		}

		if isBlank(fields) {
			continue
		}

		return r.decode(fields)
	}
}

// Row returns the 1-based number of the last row read, header included.
func (r *Reader) Row() int {
	return r.row
}

func (r *Reader) decode(fields []string) (transaction.Record, error) {
	if len(fields) < colAmount {
		return transaction.Record{}, r.malformed("row", fmt.Sprintf("expected at least 3 columns, got %d", len(fields)))
	}

	kind, err := transaction.ParseKind(fields[colType])
	if err != nil {
		return transaction.Record{}, r.malformed("type", fmt.Sprintf("unknown record type %q", strings.TrimSpace(fields[colType])))
	}

	client, err := strconv.ParseUint(strings.TrimSpace(fields[colClient]), 10, 16)
	if err != nil {
		return transaction.Record{}, r.malformed("client", fmt.Sprintf("invalid client id %q", fields[colClient]))
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(fields[colTx]), 10, 32)
	if err != nil {
		return transaction.Record{}, r.malformed("tx", fmt.Sprintf("invalid transaction id %q", fields[colTx]))
	}

	rec := transaction.Record{
		Kind:      kind,
		AccountID: uint16(client),
		TxID:      uint32(tx),
	}

	if len(fields) > colAmount {
		if raw := strings.TrimSpace(fields[colAmount]); raw != "" {
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return transaction.Record{}, r.malformed("amount", fmt.Sprintf("invalid amount %q", raw))
			}

			rec.Amount = &amount
		}
	}

	if err := rec.Validate(); err != nil {
		var domainErr transaction.DomainError
		if errors.As(err, &domainErr) {
			return transaction.Record{}, r.malformed(domainErr.Field, domainErr.Message)
		}

		return transaction.Record{}, err
	}

	return rec, nil
}

func (r *Reader) malformed(field, msg string) error {
	return transaction.NewDomainError(transaction.ErrorInvalidInput, field, fmt.Sprintf("row %d: %s", r.row, msg))
}

// ReadAll decodes every record in r.
func ReadAll(r io.Reader) ([]transaction.Record, error) {
	reader := NewReader(r)

	var records []transaction.Record

	for {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[colType]), "type")
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}

	return true
}
