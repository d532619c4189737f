package invoices

import "time"

// InvoiceInput carries the writable invoice fields of create and update requests.
type InvoiceInput struct {
	ContactID        *string
	RecipientName    string
	RecipientEmail   string
	RecipientAddress string
	Currency         string
	ChainID          int64
	IssueDate        time.Time
	DueDate          time.Time
	Memo             string
	TaxRateBps       int
	Items            []LineItemInput
	// Send creates the invoice directly in pending state
	Send bool
}

// LineItemInput is one requested position; the amount is always computed.
type LineItemInput struct {
	Description string
	Quantity    int64
	UnitPrice   int64
}

// Recipient is the subset of a contact copied onto an invoice.
type Recipient struct {
	Name          string
	Email         string
	WalletAddress string
}

// ApplyRecipientDefaults fills empty recipient fields from the referenced contact.
func (in *InvoiceInput) ApplyRecipientDefaults(r Recipient) {
	if in.RecipientName == "" {
		in.RecipientName = r.Name
	}
	if in.RecipientEmail == "" {
		in.RecipientEmail = r.Email
	}
	if in.RecipientAddress == "" {
		in.RecipientAddress = r.WalletAddress
	}
}

// PaymentInput carries an on-chain payment reported for an invoice.
type PaymentInput struct {
	PayerAddress string
	Amount       int64
	TxHash       string
	ChainID      int64
	PaidAt       time.Time
}

// StreamInput describes a payment stream towards the invoice issuer.
type StreamInput struct {
	SenderAddress    string
	RecipientAddress string
	RatePerSecond    int64
	StartTime        time.Time
	StopTime         time.Time
}
