package invoices

import (
	"fmt"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/validators"
)

// Status is the stored lifecycle state of an invoice.
type Status string

// Stored statuses. StatusOverdue is never stored, see Invoice.EffectiveStatus.
const (
	StatusDraft         Status = "draft"
	StatusPending       Status = "pending"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
	StatusCancelled     Status = "cancelled"
	StatusOverdue       Status = "overdue"
)

// AllStatuses lists every status a caller may observe, in dashboard order.
var AllStatuses = []Status{StatusDraft, StatusPending, StatusPartiallyPaid, StatusOverdue, StatusPaid, StatusCancelled}

// MaxTaxRateBps is 100% expressed in basis points
const MaxTaxRateBps = 10000

// Invoice is a bill issued by a wallet owner. Monetary values are minor units of Currency.
type Invoice struct {
	ID               string     `validate:"required,uuid4"`
	IssuerID         string     `validate:"required,uuid4"`
	IssuerAddress    string     `validate:"required,eth_addr"`
	Sequence         int64      `validate:"min=0"`
	Number           string     `validate:"max=32"`
	ContactID        *string    `validate:"omitempty,uuid4"`
	RecipientName    string     `validate:"required,max=150"`
	RecipientEmail   string     `validate:"omitempty,email,max=255"`
	RecipientAddress string     `validate:"omitempty,eth_addr"`
	Currency         string     `validate:"required,currency"`
	ChainID          int64      `validate:"min=0"`
	Status           Status     `validate:"required,oneof=draft pending partially_paid paid cancelled"`
	IssueDate        time.Time  `validate:"required"`
	DueDate          time.Time  `validate:"required"`
	Memo             string     `validate:"max=2000"`
	Items            []LineItem `validate:"required,min=1,max=100,dive"`
	Subtotal         int64      `validate:"min=0"`
	TaxRateBps       int        `validate:"min=0,max=10000"`
	Tax              int64      `validate:"min=0"`
	Total            int64      `validate:"min=0"`
	AmountPaid       int64      `validate:"min=0"`
	Hash             *string
	HashedAt         *time.Time
	CreatedAt        time.Time `validate:"required"`
	UpdatedAt        time.Time
}

// LineItem is one billed position.
type LineItem struct {
	ID          string `validate:"required,uuid4"`
	InvoiceID   string `validate:"required,uuid4"`
	Position    int    `validate:"min=0"`
	Description string `validate:"required,min=1,max=500"`
	Quantity    int64  `validate:"min=1,max=1000000000000"`
	UnitPrice   int64  `validate:"min=0,max=1000000000000"`
	Amount      int64  `validate:"min=0"`
}

// Validate for validating Invoice struct
func (i *Invoice) Validate() error {
	if err := validators.Struct(i); err != nil {
		return err
	}
	if i.DueDate.Before(i.IssueDate) {
		return fmt.Errorf("%w: due date before issue date", apperr.ErrValidation)
	}
	return nil
}

// FormatNumber renders the human facing invoice number for a per-issuer sequence.
func FormatNumber(sequence int64) string {
	return fmt.Sprintf("INV-%06d", sequence)
}

// Recalculate derives item amounts, subtotal, tax and total from the line items.
// Tax is rounded half up to the nearest minor unit. Totals that do not fit into
// int64 fail with ErrAmountOverflow and leave the invoice totals untouched.
func (i *Invoice) Recalculate() error {
	var subtotal int64
	amounts := make([]int64, len(i.Items))
	for idx, item := range i.Items {
		amount, err := MulAmounts(item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("line item %d: %w", idx+1, err)
		}
		if subtotal, err = AddAmounts(subtotal, amount); err != nil {
			return fmt.Errorf("subtotal: %w", err)
		}
		amounts[idx] = amount
	}

	scaled, err := MulAmounts(subtotal, int64(i.TaxRateBps))
	if err != nil {
		return fmt.Errorf("tax: %w", err)
	}
	if scaled, err = AddAmounts(scaled, MaxTaxRateBps/2); err != nil {
		return fmt.Errorf("tax: %w", err)
	}
	tax := scaled / MaxTaxRateBps
	total, err := AddAmounts(subtotal, tax)
	if err != nil {
		return fmt.Errorf("total: %w", err)
	}

	for idx := range i.Items {
		i.Items[idx].Position = idx
		i.Items[idx].Amount = amounts[idx]
	}
	i.Subtotal = subtotal
	i.Tax = tax
	i.Total = total
	return nil
}

// Outstanding is the amount still to be paid, never negative.
func (i *Invoice) Outstanding() int64 {
	if i.Status == StatusCancelled || i.Status == StatusDraft {
		return 0
	}
	if rest := i.Total - i.AmountPaid; rest > 0 {
		return rest
	}
	return 0
}

// IsOverdue reports whether an open invoice is past the end of its due day (UTC).
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status != StatusPending && i.Status != StatusPartiallyPaid {
		return false
	}
	return i.DueDate.Before(OverdueCutoff(now))
}

// OverdueCutoff is the start of the UTC day of now. Open invoices due before it are overdue.
func OverdueCutoff(now time.Time) time.Time {
	return now.UTC().Truncate(24 * time.Hour)
}

// EffectiveStatus is the status shown to users: open invoices past due report StatusOverdue.
func (i *Invoice) EffectiveStatus(now time.Time) Status {
	if i.IsOverdue(now) {
		return StatusOverdue
	}
	return i.Status
}

// CanEdit reports whether items, recipient and dates may still change.
func (i *Invoice) CanEdit() bool {
	return (i.Status == StatusDraft || i.Status == StatusPending) && i.AmountPaid == 0
}

// CanDelete reports whether the invoice may be removed. Only drafts are deletable.
func (i *Invoice) CanDelete() bool {
	return i.Status == StatusDraft
}

// AcceptsPayments reports whether payments and streams may be recorded.
func (i *Invoice) AcceptsPayments() bool {
	return i.Status == StatusPending || i.Status == StatusPartiallyPaid
}

// IsPublic reports whether the payer facing view may show the invoice.
func (i *Invoice) IsPublic() bool {
	return i.Status != StatusDraft
}

// Send moves a draft to pending.
func (i *Invoice) Send(now time.Time) error {
	if i.Status != StatusDraft {
		return fmt.Errorf("%w: only draft invoices can be sent, invoice is %s", apperr.ErrInvalidState, i.Status)
	}
	i.Status = StatusPending
	i.UpdatedAt = now
	return nil
}

// Cancel voids an invoice that has not received any payment.
func (i *Invoice) Cancel(now time.Time) error {
	if i.Status != StatusDraft && i.Status != StatusPending {
		return fmt.Errorf("%w: invoice is %s", apperr.ErrInvalidState, i.Status)
	}
	if i.AmountPaid > 0 {
		return fmt.Errorf("%w: invoice has payments", apperr.ErrInvalidState)
	}
	i.Status = StatusCancelled
	i.UpdatedAt = now
	return nil
}

// SettleStatus derives paid or partially paid from AmountPaid after a payment.
func (i *Invoice) SettleStatus() {
	switch {
	case i.AmountPaid >= i.Total:
		i.Status = StatusPaid
	case i.AmountPaid > 0:
		i.Status = StatusPartiallyPaid
	}
}
