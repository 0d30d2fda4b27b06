// Package csvio decodes transaction records from CSV and renders the final ledger as CSV.
//
// Input columns are type,client,tx,amount. Fields are whitespace-trimmed, the
// amount column may be empty or absent for dispute, resolve and chargeback
// rows, and a leading header row is skipped. Output columns are
// client,available,held,total,locked with amounts fixed at four decimal places.
package csvio
