// Package invoices contains invoices, their line items, payments and payment streams.
//
// Amounts are int64 minor units of the invoice currency. Totals are always derived
// from the line items via Invoice.Recalculate and never accepted from callers.
package invoices
