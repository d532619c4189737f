package invoices

import (
	"strings"
	"time"
)

// CommitmentFields are the invoice values bound by a commitment hash.
type CommitmentFields struct {
	IssuerAddress    string
	RecipientAddress string
	Total            int64
	Currency         string
	DueDate          time.Time
	Number           string
}

// CommitmentFields extracts the committed values of the invoice.
func (i *Invoice) CommitmentFields() CommitmentFields {
	return CommitmentFields{
		IssuerAddress:    strings.ToLower(i.IssuerAddress),
		RecipientAddress: strings.ToLower(i.RecipientAddress),
		Total:            i.Total,
		Currency:         i.Currency,
		DueDate:          i.DueDate,
		Number:           i.Number,
	}
}

// Verification is the outcome of checking a commitment against the current invoice.
type Verification struct {
	Valid    bool
	Expected string
	Stored   *string
}
