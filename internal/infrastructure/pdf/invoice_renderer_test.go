//go:build unit
// +build unit

package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *invoices.Document {
	id := uuid.NewString()
	hash := "0x0badc0de"
	inv := &invoices.Invoice{
		ID:               id,
		Number:           "INV-000042",
		RecipientName:    "Zoë Müller GmbH",
		RecipientAddress: "0x8617e340b3d01fa5f11f306f4090fd50e238070d",
		Currency:         "USDC",
		Status:           invoices.StatusPartiallyPaid,
		IssueDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:          time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Memo:             "Thanks for your business.",
		TaxRateBps:       1950,
		AmountPaid:       1000,
		Hash:             &hash,
		Items: []invoices.LineItem{
			{ID: uuid.NewString(), InvoiceID: id, Description: "Smart contract audit", Quantity: 1, UnitPrice: 250000},
		},
	}
	if err := inv.Recalculate(); err != nil {
		panic(err)
	}
	return &invoices.Document{
		Invoice: inv,
		Issuer: invoices.Issuer{
			WalletAddress: "0x52908400098527886e0f7030069857d2e4169ee7",
			DisplayName:   "Satoshi",
			Company:       "Nakamoto Consulting",
		},
		Payments: []*invoices.Payment{
			{Amount: 1000, TxHash: "0x" + string(bytes.Repeat([]byte("a"), 64)), PaidAt: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		},
		GeneratedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceRenderer_Render(t *testing.T) {
	renderer := NewInvoiceRenderer(testutil.SetupTestLogger(t))

	out, err := renderer.Render(testDocument())
	require.NoError(t, err)
	assert.Equal(t, "invoice-inv-000042-zoe-muller-gmbh.pdf", out.FileName)
	assert.Equal(t, ContentType, out.ContentType)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))
	assert.True(t, bytes.Contains(out.Content, []byte("%%EOF")))
}

func TestInvoiceRenderer_RejectsEmptyDocument(t *testing.T) {
	renderer := NewInvoiceRenderer(testutil.SetupTestLogger(t))

	_, err := renderer.Render(&invoices.Document{})
	assert.Error(t, err)
}

func TestFormatBps(t *testing.T) {
	assert.Equal(t, "19.5", formatBps(1950))
	assert.Equal(t, "0", formatBps(0))
	assert.Equal(t, "100", formatBps(10000))
}
