//go:build unit
// +build unit

package invoices

import (
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(status Status) *Invoice {
	id := uuid.NewString()
	inv := &Invoice{
		ID:            id,
		IssuerID:      uuid.NewString(),
		IssuerAddress: "0x52908400098527886e0f7030069857d2e4169ee7",
		Sequence:      1,
		Number:        FormatNumber(1),
		RecipientName: "Acme Corp",
		Currency:      "USDC",
		Status:        status,
		IssueDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Items: []LineItem{
			{ID: uuid.NewString(), InvoiceID: id, Description: "Design", Quantity: 3, UnitPrice: 15000},
			{ID: uuid.NewString(), InvoiceID: id, Description: "Hosting", Quantity: 1, UnitPrice: 4999},
		},
		TaxRateBps: 1900,
		CreatedAt:  time.Now(),
	}
	if err := inv.Recalculate(); err != nil {
		panic(err)
	}
	return inv
}

func TestInvoice_Recalculate(t *testing.T) {
	inv := newTestInvoice(StatusDraft)

	assert.Equal(t, int64(45000), inv.Items[0].Amount)
	assert.Equal(t, 1, inv.Items[1].Position)
	assert.Equal(t, int64(49999), inv.Subtotal)
	// 49999 * 0.19 = 9499.81
	assert.Equal(t, int64(9500), inv.Tax)
	assert.Equal(t, int64(59499), inv.Total)
}

func TestInvoice_RecalculateRoundsHalfUp(t *testing.T) {
	inv := newTestInvoice(StatusDraft)
	inv.Items = inv.Items[:1]
	inv.Items[0].Quantity = 1
	inv.Items[0].UnitPrice = 50
	inv.TaxRateBps = 100
	require.NoError(t, inv.Recalculate())

	// 50 * 0.01 = 0.5
	assert.Equal(t, int64(1), inv.Tax)

	inv.Items[0].UnitPrice = 49
	require.NoError(t, inv.Recalculate())
	assert.Equal(t, int64(0), inv.Tax)
}

func TestInvoice_RecalculateRejectsWrappingItemAmount(t *testing.T) {
	inv := newTestInvoice(StatusDraft)
	inv.Items = inv.Items[:1]
	inv.Items[0].Quantity = 1 << 32
	inv.Items[0].UnitPrice = 1 << 32

	err := inv.Recalculate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	// previous totals are kept
	assert.Equal(t, int64(59499), inv.Total)

	// the per-item caps reject the inputs on their own as well
	assert.ErrorIs(t, inv.Validate(), apperr.ErrValidation)
}

func TestInvoice_RecalculateRejectsWrappingTax(t *testing.T) {
	inv := newTestInvoice(StatusDraft)
	inv.Items = inv.Items[:1]
	inv.Items[0].Quantity = 1000
	inv.Items[0].UnitPrice = MaxAmount
	inv.TaxRateBps = MaxTaxRateBps

	// subtotal 1e15 fits, subtotal * 10000 does not
	assert.ErrorIs(t, inv.Recalculate(), ErrAmountOverflow)
	assert.GreaterOrEqual(t, inv.Tax, int64(0))
}

func TestInvoice_Validate(t *testing.T) {
	inv := newTestInvoice(StatusDraft)
	require.NoError(t, inv.Validate())

	noItems := *inv
	noItems.Items = nil
	assert.ErrorIs(t, noItems.Validate(), apperr.ErrValidation)

	badCurrency := *inv
	badCurrency.Currency = "usd"
	assert.Error(t, badCurrency.Validate())

	badTax := *inv
	badTax.TaxRateBps = 10001
	assert.Error(t, badTax.Validate())

	early := *inv
	early.DueDate = inv.IssueDate.Add(-24 * time.Hour)
	assert.ErrorIs(t, early.Validate(), apperr.ErrValidation)

	overdueStored := *inv
	overdueStored.Status = StatusOverdue
	assert.Error(t, overdueStored.Validate())
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-000001", FormatNumber(1))
	assert.Equal(t, "INV-001234", FormatNumber(1234))
}

func TestInvoice_EffectiveStatus(t *testing.T) {
	inv := newTestInvoice(StatusPending)

	onDueDay := time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)
	dayAfter := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusPending, inv.EffectiveStatus(onDueDay))
	assert.Equal(t, StatusOverdue, inv.EffectiveStatus(dayAfter))

	inv.Status = StatusPartiallyPaid
	assert.Equal(t, StatusOverdue, inv.EffectiveStatus(dayAfter))

	inv.Status = StatusPaid
	assert.Equal(t, StatusPaid, inv.EffectiveStatus(dayAfter))

	inv.Status = StatusDraft
	assert.Equal(t, StatusDraft, inv.EffectiveStatus(dayAfter))
}

func TestInvoice_Transitions(t *testing.T) {
	now := time.Now()

	inv := newTestInvoice(StatusDraft)
	assert.True(t, inv.CanEdit())
	assert.True(t, inv.CanDelete())
	assert.False(t, inv.AcceptsPayments())
	assert.False(t, inv.IsPublic())

	require.NoError(t, inv.Send(now))
	assert.Equal(t, StatusPending, inv.Status)
	assert.False(t, inv.CanDelete())
	assert.True(t, inv.CanEdit())
	assert.True(t, inv.AcceptsPayments())
	assert.ErrorIs(t, inv.Send(now), apperr.ErrInvalidState)

	require.NoError(t, inv.Cancel(now))
	assert.Equal(t, StatusCancelled, inv.Status)
	assert.ErrorIs(t, inv.Cancel(now), apperr.ErrInvalidState)
	assert.Equal(t, int64(0), inv.Outstanding())
}

func TestInvoice_SettleStatus(t *testing.T) {
	inv := newTestInvoice(StatusPending)

	inv.AmountPaid = 1000
	inv.SettleStatus()
	assert.Equal(t, StatusPartiallyPaid, inv.Status)
	assert.Equal(t, inv.Total-1000, inv.Outstanding())
	assert.False(t, inv.CanEdit())
	assert.ErrorIs(t, inv.Cancel(time.Now()), apperr.ErrInvalidState)

	inv.AmountPaid = inv.Total + 1
	inv.SettleStatus()
	assert.Equal(t, StatusPaid, inv.Status)
	assert.Equal(t, int64(0), inv.Outstanding())
	assert.False(t, inv.AcceptsPayments())
}

func TestInvoiceInput_ApplyRecipientDefaults(t *testing.T) {
	in := InvoiceInput{RecipientName: "Override"}
	in.ApplyRecipientDefaults(Recipient{Name: "Contact", Email: "a@b.example", WalletAddress: "0xabc"})

	assert.Equal(t, "Override", in.RecipientName)
	assert.Equal(t, "a@b.example", in.RecipientEmail)
	assert.Equal(t, "0xabc", in.RecipientAddress)
}

func TestInvoiceQuery_Validate(t *testing.T) {
	q := NewInvoiceQuery(uuid.NewString())
	assert.NoError(t, q.Validate())

	q.Status = StatusOverdue
	assert.NoError(t, q.Validate())

	q.Status = "archived"
	assert.Error(t, q.Validate())

	q = NewInvoiceQuery(uuid.NewString())
	q.SortBy = "recipient"
	assert.Error(t, q.Validate())
}
